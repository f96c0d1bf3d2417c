package strategy

import (
	"context"
	"log/slog"
	"time"

	"github.com/shaiso/Kannon/internal/domain"
	"github.com/shaiso/Kannon/internal/worker"
)

// Sequential выполняет задачи по одной.
type Sequential struct {
	processor *worker.Processor
	logger    *slog.Logger
}

// NewSequential создаёт Sequential. Parallel и Launcher игнорируются.
func NewSequential(cfg Config) *Sequential {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Sequential{
		processor: worker.NewProcessor(worker.ProcessorConfig{
			RunID:    cfg.RunID,
			Body:     cfg.Body,
			Recorder: cfg.Recorder,
			Metrics:  cfg.Metrics,
			Logger:   logger,
		}),
		logger: logger,
	}
}

// Run выполняет задачи в порядке списка до первой ошибки.
func (s *Sequential) Run(ctx context.Context, tasks []domain.Task) (*Summary, error) {
	summary := newSummary(ModeSequential, 0)
	defer func() { summary.FinishedAt = time.Now() }()

	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		s.logger.Info("processing task", "task", task.Name, "dataset", task.Dataset)

		res := s.processor.Process(ctx, task)
		summary.Results = append(summary.Results, res)

		if res.Failed() {
			s.logger.Error("task failed, aborting run",
				"task", task.Name,
				"error", res.Error,
				"remaining", len(tasks)-len(summary.Results),
			)
			return summary, res.Cause()
		}

		s.logger.Info("task completed", "task", task.Name, "path", res.Path, "duration", res.Duration)
	}

	return summary, nil
}
