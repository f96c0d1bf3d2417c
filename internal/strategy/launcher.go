package strategy

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/shaiso/Kannon/internal/lock"
	"github.com/shaiso/Kannon/internal/pipeline"
	"github.com/shaiso/Kannon/internal/queue"
	"github.com/shaiso/Kannon/internal/telemetry"
	"github.com/shaiso/Kannon/internal/worker"
)

// Wait блокируется до завершения воркера и возвращает его отчёт.
type Wait func() (*worker.Report, error)

// Launcher: среда, в которой работают воркеры.
type Launcher interface {
	// Open создаёт общую очередь run'а ёмкостью capacity.
	Open(ctx context.Context, runID uuid.UUID, capacity int) (queue.Queue, error)

	// Launch запускает воркера с номером id.
	Launch(ctx context.Context, runID uuid.UUID, id int) (Wait, error)

	// Close освобождает ресурсы run'а после завершения всех воркеров.
	Close(ctx context.Context, runID uuid.UUID) error
}

// ErrNotOpened: Launch вызван до Open.
var ErrNotOpened = errors.New("launcher not opened")

// GoroutineConfig: конфигурация GoroutineLauncher.
type GoroutineConfig struct {
	Body     pipeline.Body
	Scope    worker.Scope
	Recorder worker.Recorder
	Metrics  *telemetry.Metrics
	Logger   *slog.Logger
}

// GoroutineLauncher запускает воркеров горутинами текущего процесса.
type GoroutineLauncher struct {
	cfg GoroutineConfig

	mu    sync.Mutex
	queue *queue.Memory
	gate  *lock.LocalGate
}

// NewGoroutineLauncher создаёт GoroutineLauncher.
func NewGoroutineLauncher(cfg GoroutineConfig) *GoroutineLauncher {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &GoroutineLauncher{cfg: cfg}
}

// Open создаёт queue.Memory и свободную lock.LocalGate.
func (l *GoroutineLauncher) Open(_ context.Context, _ uuid.UUID, capacity int) (queue.Queue, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.queue = queue.NewMemory(capacity)
	l.gate = lock.NewLocalGate()
	return l.queue, nil
}

// Launch запускает воркера в отдельной горутине.
func (l *GoroutineLauncher) Launch(ctx context.Context, runID uuid.UUID, id int) (Wait, error) {
	l.mu.Lock()
	q, gate := l.queue, l.gate
	l.mu.Unlock()

	if q == nil {
		return nil, ErrNotOpened
	}

	w := worker.New(worker.Config{
		ID:       id,
		RunID:    runID,
		Queue:    q,
		Body:     l.cfg.Body,
		Gate:     gate,
		Scope:    l.cfg.Scope,
		Recorder: l.cfg.Recorder,
		Metrics:  l.cfg.Metrics,
		Logger:   l.cfg.Logger,
	})

	type outcome struct {
		report *worker.Report
		err    error
	}
	done := make(chan outcome, 1)

	go func() {
		report, err := w.Run(ctx)
		done <- outcome{report: report, err: err}
	}()

	return func() (*worker.Report, error) {
		o := <-done
		return o.report, o.err
	}, nil
}

// Close закрывает очередь.
func (l *GoroutineLauncher) Close(context.Context, uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.queue != nil {
		l.queue.Close()
		l.queue = nil
	}
	return nil
}
