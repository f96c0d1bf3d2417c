package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shaiso/Kannon/internal/queue"
)

// ErrMalformedMessage: сообщение не удалось разобрать.
var ErrMalformedMessage = errors.New("malformed message")

// Receiver получает элементы из очереди run'а по одному.
type Receiver struct {
	conn   *Connection
	queue  string
	logger *slog.Logger

	mu         sync.Mutex
	deliveries <-chan amqp.Delivery
}

// NewReceiver создаёт Receiver для очереди queueName.
func NewReceiver(conn *Connection, queueName string, logger *slog.Logger) *Receiver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Receiver{conn: conn, queue: queueName, logger: logger}
}

// setup начинает потребление с prefetch 1 и ручным ack.
func (r *Receiver) setup() (<-chan amqp.Delivery, error) {
	var deliveries <-chan amqp.Delivery

	err := r.conn.WithChannel(func(ch *amqp.Channel) error {
		if err := ch.Qos(1, 0, false); err != nil {
			return fmt.Errorf("set qos: %w", err)
		}

		d, err := ch.Consume(
			r.queue, // queue
			"",      // consumer tag (auto-generated)
			false,   // auto-ack
			false,   // exclusive
			false,   // no-local
			false,   // no-wait
			nil,     // args
		)
		if err != nil {
			return fmt.Errorf("consume %s: %w", r.queue, err)
		}
		deliveries = d
		return nil
	})

	return deliveries, err
}

// Receive блокируется до получения корректного элемента.
//
// Некорректные сообщения отклоняются в DLQ. При разрыве соединения
// Receive ждёт переподключения.
func (r *Receiver) Receive(ctx context.Context) (*queue.Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for {
		if r.deliveries == nil {
			d, err := r.setup()
			if err != nil {
				if !errors.Is(err, ErrNoChannel) {
					return nil, err
				}
				if err := r.awaitReconnect(ctx); err != nil {
					return nil, err
				}
				continue
			}
			r.deliveries = d
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case raw, ok := <-r.deliveries:
			if !ok {
				r.deliveries = nil
				r.logger.Warn("deliveries closed, waiting for reconnect", "queue", r.queue)
				if err := r.awaitReconnect(ctx); err != nil {
					return nil, err
				}
				continue
			}

			delivery, err := decode(raw)
			if err != nil {
				r.logger.Error("rejecting malformed message",
					"queue", r.queue,
					"error", err,
					"body", string(raw.Body),
				)
				raw.Nack(false, false)
				continue
			}
			return delivery, nil
		}
	}
}

func (r *Receiver) awaitReconnect(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-r.conn.ReconnectNotify():
		return nil
	}
}

func decode(raw amqp.Delivery) (*queue.Delivery, error) {
	var msg Message
	if err := json.Unmarshal(raw.Body, &msg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}

	item, err := msg.Item()
	if err != nil {
		return nil, err
	}

	return queue.NewDelivery(item, func() error { return raw.Ack(false) }), nil
}
