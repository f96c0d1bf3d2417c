package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shaiso/Kannon/internal/domain"
)

// MessageType: тип сообщения в очереди.
type MessageType string

// Типы сообщений.
const (
	MessageTypeTaskReady      MessageType = "task.ready"
	MessageTypeWorkerShutdown MessageType = "worker.shutdown"
)

// Message: конверт сообщения.
type Message struct {
	ID        string          `json:"id"`
	Type      MessageType     `json:"type"`
	RunID     uuid.UUID       `json:"run_id"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// TaskReadyPayload: payload сообщения task.ready.
type TaskReadyPayload struct {
	Task domain.Task `json:"task"`
}

// NewMessage упаковывает элемент очереди в конверт.
func NewMessage(runID uuid.UUID, item domain.QueueItem) (*Message, error) {
	msg := &Message{
		ID:        uuid.NewString(),
		RunID:     runID,
		Timestamp: time.Now(),
	}

	if item.IsShutdown() {
		msg.Type = MessageTypeWorkerShutdown
		return msg, nil
	}

	if item.Task == nil {
		return nil, fmt.Errorf("%w: task item without task", ErrMalformedMessage)
	}

	payload, err := json.Marshal(TaskReadyPayload{Task: *item.Task})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	msg.Type = MessageTypeTaskReady
	msg.Payload = payload

	return msg, nil
}

// Item распаковывает элемент очереди из конверта.
func (m *Message) Item() (domain.QueueItem, error) {
	switch m.Type {
	case MessageTypeWorkerShutdown:
		return domain.ShutdownItem(), nil

	case MessageTypeTaskReady:
		var p TaskReadyPayload
		if err := json.Unmarshal(m.Payload, &p); err != nil {
			return domain.QueueItem{}, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
		}
		if p.Task.Name == "" {
			return domain.QueueItem{}, fmt.Errorf("%w: task without name", ErrMalformedMessage)
		}
		return domain.TaskItem(p.Task), nil

	default:
		return domain.QueueItem{}, fmt.Errorf("%w: unknown type %q", ErrMalformedMessage, m.Type)
	}
}

// Publisher публикует элементы очереди run'а.
type Publisher struct {
	conn   *Connection
	logger *slog.Logger
}

// NewPublisher создаёт Publisher.
func NewPublisher(conn *Connection, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{conn: conn, logger: logger}
}

// Publish публикует элемент в очередь run'а.
func (p *Publisher) Publish(ctx context.Context, runID uuid.UUID, item domain.QueueItem) error {
	msg, err := NewMessage(runID, item)
	if err != nil {
		return err
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	return p.conn.WithChannel(func(ch *amqp.Channel) error {
		err := ch.PublishWithContext(
			ctx,
			ExchangeTasks,
			RoutingKey(runID),
			true,  // mandatory: очередь run'а должна существовать
			false, // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				MessageId:    msg.ID,
				Timestamp:    msg.Timestamp,
				Type:         string(msg.Type),
				Body:         body,
			},
		)
		if err != nil {
			return fmt.Errorf("publish %s: %w", msg.Type, err)
		}

		p.logger.Debug("published message",
			"run_id", runID,
			"message_id", msg.ID,
			"type", msg.Type,
		)
		return nil
	})
}
