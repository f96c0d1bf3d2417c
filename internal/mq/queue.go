package mq

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/shaiso/Kannon/internal/domain"
	"github.com/shaiso/Kannon/internal/queue"
)

// RunQueue: очередь run'а в RabbitMQ, реализует queue.Queue.
//
// Драйвер использует только Put, воркеры-процессы только Receive.
type RunQueue struct {
	runID     uuid.UUID
	publisher *Publisher
	receiver  *Receiver
}

var _ queue.Queue = (*RunQueue)(nil)

// NewRunQueue создаёт RunQueue поверх уже объявленной очереди run'а.
func NewRunQueue(conn *Connection, runID uuid.UUID, logger *slog.Logger) *RunQueue {
	return &RunQueue{
		runID:     runID,
		publisher: NewPublisher(conn, logger),
		receiver:  NewReceiver(conn, RunQueueName(runID), logger),
	}
}

// Put публикует элемент.
func (q *RunQueue) Put(ctx context.Context, item domain.QueueItem) error {
	return q.publisher.Publish(ctx, q.runID, item)
}

// Receive получает следующий элемент.
func (q *RunQueue) Receive(ctx context.Context) (*queue.Delivery, error) {
	return q.receiver.Receive(ctx)
}
