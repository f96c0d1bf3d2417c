package lock

import (
	"context"
	"sync"
)

// Release освобождает область. Повторный вызов ничего не делает.
type Release func()

// Gate: эксклюзивная область.
type Gate interface {
	Acquire(ctx context.Context) (Release, error)
}

// once делает fn идемпотентной.
func once(fn func()) Release {
	var o sync.Once
	return func() { o.Do(fn) }
}

// LocalGate: эксклюзивная область внутри процесса.
type LocalGate struct {
	slot chan struct{}
}

// NewLocalGate создаёт свободную область.
func NewLocalGate() *LocalGate {
	return &LocalGate{slot: make(chan struct{}, 1)}
}

// Acquire входит в область.
func (g *LocalGate) Acquire(ctx context.Context) (Release, error) {
	select {
	case g.slot <- struct{}{}:
		return once(func() { <-g.slot }), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Held сообщает, занята ли область.
func (g *LocalGate) Held() bool {
	return len(g.slot) == 1
}
