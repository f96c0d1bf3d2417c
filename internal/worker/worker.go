package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/shaiso/Kannon/internal/lock"
	"github.com/shaiso/Kannon/internal/pipeline"
	"github.com/shaiso/Kannon/internal/queue"
	"github.com/shaiso/Kannon/internal/telemetry"
)

// Worker: потребитель общей очереди.
//
// Worker не хранит состояния между задачами; несколько воркеров
// потребляют из одной очереди, каждый элемент получает ровно один из них.
type Worker struct {
	id        int
	queue     queue.Queue
	processor *Processor
	metrics   *telemetry.Metrics
	logger    *slog.Logger
}

// Config: конфигурация Worker.
type Config struct {
	// ID: номер воркера, начиная с 1.
	ID int

	RunID uuid.UUID

	// Queue: общая очередь run'а.
	Queue queue.Queue

	// Body: тело задачи.
	Body pipeline.Body

	// Gate: эксклюзивная область, общая для всех воркеров run'а.
	Gate  lock.Gate
	Scope Scope

	Recorder Recorder           // опционально
	Metrics  *telemetry.Metrics // опционально
	Logger   *slog.Logger
}

// New создаёт Worker.
func New(cfg Config) *Worker {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = telemetry.WithWorkerID(logger, strconv.Itoa(cfg.ID))

	return &Worker{
		id:      cfg.ID,
		queue:   cfg.Queue,
		metrics: cfg.Metrics,
		logger:  logger,
		processor: NewProcessor(ProcessorConfig{
			WorkerID: cfg.ID,
			RunID:    cfg.RunID,
			Body:     cfg.Body,
			Gate:     cfg.Gate,
			Scope:    cfg.Scope,
			Recorder: cfg.Recorder,
			Metrics:  cfg.Metrics,
			Logger:   logger,
		}),
	}
}

// ID возвращает номер воркера.
func (w *Worker) ID() int {
	return w.id
}

// Run потребляет очередь до получения sentinel.
//
// Ошибки задач попадают в Report, ошибка возвращается только если
// воркер не может продолжать (очередь недоступна, ctx отменён).
func (w *Worker) Run(ctx context.Context) (*Report, error) {
	report := &Report{WorkerID: w.id}

	if w.queue == nil {
		return report, ErrNoQueue
	}

	w.metrics.WorkerStarted()
	defer w.metrics.WorkerStopped()

	w.logger.Info("worker started")

	for {
		delivery, err := w.queue.Receive(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				w.logger.Warn("worker interrupted", "processed", len(report.Results))
				return report, err
			}
			return report, fmt.Errorf("%w: %w", ErrReceive, err)
		}

		if delivery.Item.IsShutdown() {
			w.ack(delivery)
			w.logger.Info("worker finished",
				"processed", len(report.Results),
				"failed", len(report.Failures()),
			)
			return report, nil
		}

		if delivery.Item.Task == nil {
			w.logger.Warn("skipping malformed queue item", "kind", delivery.Item.Kind)
			w.ack(delivery)
			continue
		}

		task := *delivery.Item.Task
		w.logger.Info("processing task", "task", task.Name, "dataset", task.Dataset)

		res := w.processor.Process(ctx, task)
		report.Results = append(report.Results, res)
		w.ack(delivery)

		if res.Failed() {
			w.logger.Error("task failed", "task", task.Name, "error", res.Error)
		} else {
			w.logger.Info("task completed",
				"task", task.Name,
				"path", res.Path,
				"duration", res.Duration,
			)
		}
	}
}

func (w *Worker) ack(d *queue.Delivery) {
	if err := d.Ack(); err != nil {
		w.logger.Warn("failed to ack queue item", "error", err)
	}
}
