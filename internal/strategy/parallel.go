package strategy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shaiso/Kannon/internal/domain"
	"github.com/shaiso/Kannon/internal/worker"
)

// Parallel распределяет задачи по N воркерам через общую очередь.
type Parallel struct {
	workers  int
	runID    uuid.UUID
	launcher Launcher
	logger   *slog.Logger
}

// NewParallel создаёт Parallel.
func NewParallel(cfg Config) (*Parallel, error) {
	if cfg.Parallel < 1 {
		return nil, fmt.Errorf("%w: parallel mode needs at least one worker, got %d", ErrInvalidWorkerCount, cfg.Parallel)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	launcher := cfg.Launcher
	if launcher == nil {
		launcher = NewGoroutineLauncher(GoroutineConfig{
			Body:     cfg.Body,
			Scope:    cfg.Scope,
			Recorder: cfg.Recorder,
			Metrics:  cfg.Metrics,
			Logger:   logger,
		})
	}

	runID := cfg.RunID
	if runID == uuid.Nil {
		runID = uuid.New()
	}

	return &Parallel{
		workers:  cfg.Parallel,
		runID:    runID,
		launcher: launcher,
		logger:   logger,
	}, nil
}

// Workers возвращает число воркеров.
func (p *Parallel) Workers() int {
	return p.workers
}

// Run выполняет задачи и ждёт завершения всех воркеров.
func (p *Parallel) Run(ctx context.Context, tasks []domain.Task) (*Summary, error) {
	summary := newSummary(ModeParallel, p.workers)
	defer func() { summary.FinishedAt = time.Now() }()

	// 1. Очередь и эксклюзивная область
	q, err := p.launcher.Open(ctx, p.runID, len(tasks)+p.workers)
	if err != nil {
		return summary, fmt.Errorf("open queue: %w", err)
	}
	defer func() {
		if err := p.launcher.Close(context.WithoutCancel(ctx), p.runID); err != nil {
			p.logger.Warn("failed to close run queue", "run_id", p.runID, "error", err)
		}
	}()

	// 2. Все задачи по порядку
	for _, task := range tasks {
		if err := q.Put(ctx, domain.TaskItem(task)); err != nil {
			return summary, fmt.Errorf("enqueue %s: %w", task.Name, err)
		}
	}

	// 3. Воркеры
	waits := make([]Wait, 0, p.workers)
	var launchErr error
	for id := 1; id <= p.workers; id++ {
		wait, err := p.launcher.Launch(ctx, p.runID, id)
		if err != nil {
			launchErr = fmt.Errorf("%w %d: %w", ErrLaunch, id, err)
			break
		}
		waits = append(waits, wait)
	}

	p.logger.Info("workers started", "workers", len(waits), "tasks", len(tasks))

	// 4. По одному sentinel'у на запущенного воркера
	var enqueueErr error
	for range waits {
		if err := q.Put(ctx, domain.ShutdownItem()); err != nil {
			enqueueErr = fmt.Errorf("enqueue shutdown: %w", err)
			break
		}
	}

	// 5. Ожидание всех воркеров
	var workerErrs []error
	for i, wait := range waits {
		report, err := wait()
		if report != nil {
			summary.Results = append(summary.Results, report.Results...)
		}
		if err != nil {
			workerErrs = append(workerErrs, fmt.Errorf("%w: worker %d: %w", worker.ErrWorkerFailed, i+1, err))
		}
	}

	if err := errors.Join(launchErr, enqueueErr, errors.Join(workerErrs...)); err != nil {
		return summary, err
	}

	if failed := summary.Failed(); len(failed) > 0 {
		errs := []error{fmt.Errorf("%w: %d of %d", ErrTasksFailed, len(failed), len(tasks))}
		for _, res := range failed {
			errs = append(errs, res.Cause())
		}
		return summary, errors.Join(errs...)
	}

	return summary, nil
}
