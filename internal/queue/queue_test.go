package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shaiso/Kannon/internal/domain"
)

func TestMemory_FIFO(t *testing.T) {
	q := NewMemory(4)
	ctx := context.Background()

	for _, name := range []string{"story_0", "story_1", "story_2"} {
		if err := q.Put(ctx, domain.TaskItem(domain.Task{Name: name})); err != nil {
			t.Fatalf("put: %v", err)
		}
	}
	q.Put(ctx, domain.ShutdownItem())

	for _, want := range []string{"story_0", "story_1", "story_2"} {
		d, err := q.Receive(ctx)
		if err != nil {
			t.Fatalf("receive: %v", err)
		}
		if d.Item.Task == nil || d.Item.Task.Name != want {
			t.Errorf("expected %s, got %+v", want, d.Item)
		}
	}

	d, _ := q.Receive(ctx)
	if !d.Item.IsShutdown() {
		t.Errorf("expected sentinel last, got %+v", d.Item)
	}
}

func TestMemory_EachItemDeliveredOnce(t *testing.T) {
	const items = 100
	const consumers = 4

	q := NewMemory(items + consumers)
	ctx := context.Background()

	for i := range items {
		q.Put(ctx, domain.TaskItem(domain.Task{Name: domain.TaskName(i)}))
	}
	for range consumers {
		q.Put(ctx, domain.ShutdownItem())
	}

	var mu sync.Mutex
	seen := make(map[string]int)
	var wg sync.WaitGroup

	for range consumers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				d, err := q.Receive(ctx)
				if err != nil {
					t.Error(err)
					return
				}
				if d.Item.IsShutdown() {
					return
				}
				mu.Lock()
				seen[d.Item.Task.Name]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != items {
		t.Fatalf("expected %d distinct items, got %d", items, len(seen))
	}
	for name, n := range seen {
		if n != 1 {
			t.Errorf("%s delivered %d times", name, n)
		}
	}
}

func TestMemory_ReceiveRespectsContext(t *testing.T) {
	q := NewMemory(1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := q.Receive(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
}

func TestMemory_Close(t *testing.T) {
	q := NewMemory(2)
	ctx := context.Background()

	q.Put(ctx, domain.ShutdownItem())
	q.Close()
	q.Close()

	if err := q.Put(ctx, domain.ShutdownItem()); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed on put, got %v", err)
	}

	if _, err := q.Receive(ctx); err != nil {
		t.Errorf("buffered item should still be delivered: %v", err)
	}
	if _, err := q.Receive(ctx); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed on drained queue, got %v", err)
	}
}

func TestDelivery_AckOnce(t *testing.T) {
	calls := 0
	d := NewDelivery(domain.ShutdownItem(), func() error {
		calls++
		return nil
	})

	d.Ack()
	d.Ack()

	if calls != 1 {
		t.Errorf("expected ack once, got %d", calls)
	}
}
