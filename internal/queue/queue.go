// Package queue: общая очередь задач параллельной стратегии.
//
// Очередь FIFO, многопроизводительная и многопотребительская; каждый
// элемент получает ровно один потребитель. В очередь попадают задачи
// и сигналы завершения (sentinel), по одному на воркера.
//
// Memory: очередь внутри процесса для воркеров-горутин.
// Для воркеров-процессов используется mq.RunQueue поверх RabbitMQ.
package queue

import (
	"context"
	"errors"
	"sync"

	"github.com/shaiso/Kannon/internal/domain"
)

// ErrClosed: очередь закрыта.
var ErrClosed = errors.New("queue closed")

// Queue: общая очередь элементов.
type Queue interface {
	// Put добавляет элемент в конец очереди.
	Put(ctx context.Context, item domain.QueueItem) error

	// Receive блокируется до появления элемента.
	Receive(ctx context.Context) (*Delivery, error)
}

// Delivery: полученный элемент очереди.
type Delivery struct {
	Item domain.QueueItem

	ack  func() error
	once sync.Once
	err  error
}

// NewDelivery создаёт Delivery. ack вызывается не более одного раза.
func NewDelivery(item domain.QueueItem, ack func() error) *Delivery {
	return &Delivery{Item: item, ack: ack}
}

// Ack подтверждает обработку элемента.
func (d *Delivery) Ack() error {
	d.once.Do(func() {
		if d.ack != nil {
			d.err = d.ack()
		}
	})
	return d.err
}

// Memory: очередь на буферизованном канале.
type Memory struct {
	items chan domain.QueueItem

	mu     sync.RWMutex
	closed bool
}

// NewMemory создаёт очередь ёмкостью capacity.
// Put блокируется, когда очередь заполнена.
func NewMemory(capacity int) *Memory {
	if capacity < 0 {
		capacity = 0
	}
	return &Memory{items: make(chan domain.QueueItem, capacity)}
}

// Put добавляет элемент.
func (q *Memory) Put(ctx context.Context, item domain.QueueItem) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrClosed
	}

	select {
	case q.items <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Receive получает элемент. После Close оставшиеся элементы
// ещё выдаются, затем возвращается ErrClosed.
func (q *Memory) Receive(ctx context.Context) (*Delivery, error) {
	select {
	case item, ok := <-q.items:
		if !ok {
			return nil, ErrClosed
		}
		return NewDelivery(item, nil), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Len возвращает число ожидающих элементов.
func (q *Memory) Len() int {
	return len(q.items)
}

// Close закрывает очередь для Put.
func (q *Memory) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.items)
	}
}
