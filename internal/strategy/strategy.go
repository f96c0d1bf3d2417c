package strategy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shaiso/Kannon/internal/domain"
	"github.com/shaiso/Kannon/internal/pipeline"
	"github.com/shaiso/Kannon/internal/telemetry"
	"github.com/shaiso/Kannon/internal/worker"
)

// Режимы выполнения.
const (
	ModeSequential = "sequential"
	ModeParallel   = "parallel"
)

// Strategy выполняет фиксированный набор задач.
type Strategy interface {
	Run(ctx context.Context, tasks []domain.Task) (*Summary, error)
}

// Summary: итог run'а.
type Summary struct {
	Mode    string
	Workers int
	Results []worker.Result

	StartedAt  time.Time
	FinishedAt time.Time
}

func newSummary(mode string, workers int) *Summary {
	return &Summary{Mode: mode, Workers: workers, StartedAt: time.Now()}
}

// Duration возвращает продолжительность run'а.
func (s *Summary) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

// Succeeded возвращает число успешных задач.
func (s *Summary) Succeeded() int {
	n := 0
	for _, r := range s.Results {
		if !r.Failed() {
			n++
		}
	}
	return n
}

// Failed возвращает неуспешные задачи.
func (s *Summary) Failed() []worker.Result {
	var failed []worker.Result
	for _, r := range s.Results {
		if r.Failed() {
			failed = append(failed, r)
		}
	}
	return failed
}

// Paths возвращает пути сохранённых артефактов.
func (s *Summary) Paths() []string {
	var paths []string
	for _, r := range s.Results {
		if r.Path != "" {
			paths = append(paths, r.Path)
		}
	}
	return paths
}

// Config: конфигурация стратегии.
type Config struct {
	// Parallel: число воркеров; 0 означает последовательный режим.
	Parallel int

	RunID uuid.UUID

	// Body: тело задачи.
	Body pipeline.Body

	// Launcher: среда воркеров (опционально; по умолчанию GoroutineLauncher).
	Launcher Launcher

	// Scope: эксклюзивная область воркеров.
	Scope worker.Scope

	Recorder worker.Recorder    // опционально
	Metrics  *telemetry.Metrics // опционально
	Logger   *slog.Logger
}

// New выбирает стратегию по cfg.Parallel.
func New(cfg Config) (Strategy, error) {
	if cfg.Parallel < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkerCount, cfg.Parallel)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if cfg.Parallel == 0 {
		return NewSequential(cfg), nil
	}
	return NewParallel(cfg)
}
