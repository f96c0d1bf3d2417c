package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shaiso/Kannon/internal/domain"
	"github.com/shaiso/Kannon/internal/lock"
	"github.com/shaiso/Kannon/internal/pipeline"
	"github.com/shaiso/Kannon/internal/telemetry"
)

// Recorder фиксирует попытки обработки задач (журнал run'а).
type Recorder interface {
	TaskStarted(ctx context.Context, attempt *domain.TaskAttempt) error
	TaskFinished(ctx context.Context, attempt *domain.TaskAttempt) error
}

// ProcessorConfig: конфигурация Processor.
type ProcessorConfig struct {
	// WorkerID: номер воркера (0 для последовательного режима).
	WorkerID int

	// RunID: идентификатор run'а для журнала.
	RunID uuid.UUID

	// Body: тело задачи.
	Body pipeline.Body

	// Gate: эксклюзивная область (опционально; nil = без области).
	Gate  lock.Gate
	Scope Scope

	Recorder Recorder           // опционально
	Metrics  *telemetry.Metrics // опционально
	Logger   *slog.Logger
}

// Processor выполняет тело одной задачи.
type Processor struct {
	workerID int
	runID    uuid.UUID
	body     pipeline.Body
	gate     lock.Gate
	scope    Scope
	recorder Recorder
	metrics  *telemetry.Metrics
	logger   *slog.Logger
}

// NewProcessor создаёт Processor.
func NewProcessor(cfg ProcessorConfig) *Processor {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	scope := cfg.Scope
	if scope == "" {
		scope = ScopePipeline
	}

	return &Processor{
		workerID: cfg.WorkerID,
		runID:    cfg.RunID,
		body:     cfg.Body,
		gate:     cfg.Gate,
		scope:    scope,
		recorder: cfg.Recorder,
		metrics:  cfg.Metrics,
		logger:   logger,
	}
}

// Process обрабатывает задачу. Ошибка тела возвращается в Result.
func (p *Processor) Process(ctx context.Context, task domain.Task) Result {
	ctx = telemetry.WithLogger(ctx, telemetry.WithTask(p.logger, task.Name))

	attempt := domain.NewTaskAttempt(p.runID, task.Name, p.workerID)
	p.recordStarted(ctx, attempt)

	start := time.Now()
	path, err := p.execute(ctx, task)
	elapsed := time.Since(start)

	if err != nil {
		attempt.MarkFailed(err)
	} else {
		attempt.MarkSucceeded(path)
	}
	p.recordFinished(ctx, attempt)
	p.metrics.TaskFinished(string(attempt.Status), elapsed)

	return newResult(task, p.workerID, path, err, elapsed)
}

// execute выполняет тело задачи в эксклюзивной области.
// Область освобождается раньше, чем паника превращается в ошибку.
func (p *Processor) execute(ctx context.Context, task domain.Task) (path string, err error) {
	defer func() {
		if r := recover(); r != nil {
			path = ""
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
		}
	}()

	switch p.scope {
	case ScopePersist:
		artifact, err := p.body.Produce(ctx, task)
		if err != nil {
			return "", err
		}

		release, err := p.enter(ctx)
		if err != nil {
			return "", err
		}
		defer release()

		return p.body.Persist(artifact, task)

	default:
		release, err := p.enter(ctx)
		if err != nil {
			return "", err
		}
		defer release()

		return pipeline.Execute(ctx, p.body, task)
	}
}

// enter входит в эксклюзивную область.
func (p *Processor) enter(ctx context.Context) (lock.Release, error) {
	if p.gate == nil {
		return func() {}, nil
	}

	start := time.Now()
	release, err := p.gate.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("enter exclusive region: %w", err)
	}
	p.metrics.GateWaited(time.Since(start))
	p.metrics.RegionEntered()

	return func() {
		p.metrics.RegionLeft()
		release()
	}, nil
}

// Журнал не влияет на исход задачи: ошибки только логируются.
func (p *Processor) recordStarted(ctx context.Context, attempt *domain.TaskAttempt) {
	if p.recorder == nil {
		return
	}
	if err := p.recorder.TaskStarted(ctx, attempt); err != nil {
		telemetry.FromContext(ctx).Warn("failed to record task start", "error", err)
	}
}

func (p *Processor) recordFinished(ctx context.Context, attempt *domain.TaskAttempt) {
	if p.recorder == nil {
		return
	}
	if err := p.recorder.TaskFinished(ctx, attempt); err != nil {
		telemetry.FromContext(ctx).Warn("failed to record task result", "error", err)
	}
}
