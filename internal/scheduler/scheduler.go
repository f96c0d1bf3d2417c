package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Job выполняет один запуск по расписанию.
type Job func(ctx context.Context, due time.Time) error

// Config: конфигурация Scheduler.
type Config struct {
	CronExpr string

	// Timezone: IANA имя часового пояса (по умолчанию UTC).
	Timezone string

	Job Job

	// TickInterval: период проверки next_due (default: 1s).
	TickInterval time.Duration

	// MaxRuns: остановиться после стольких запусков (0 = без ограничения).
	MaxRuns int

	Logger *slog.Logger
}

// Scheduler запускает Job по cron-расписанию.
type Scheduler struct {
	expr     string
	loc      *time.Location
	job      Job
	interval time.Duration
	maxRuns  int
	logger   *slog.Logger

	nextDue time.Time
	runs    int
}

// New создаёт Scheduler. Первое время запуска вычисляется от time.Now().
func New(cfg Config) (*Scheduler, error) {
	if cfg.Job == nil {
		return nil, ErrNoJob
	}

	loc, err := LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	nextDue, err := CalculateNextDue(cfg.CronExpr, loc, time.Now())
	if err != nil {
		return nil, err
	}

	interval := cfg.TickInterval
	if interval <= 0 {
		interval = time.Second
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		expr:     cfg.CronExpr,
		loc:      loc,
		job:      cfg.Job,
		interval: interval,
		maxRuns:  cfg.MaxRuns,
		logger:   logger,
		nextDue:  nextDue,
	}, nil
}

// NextDue возвращает время следующего запуска (UTC).
func (s *Scheduler) NextDue() time.Time {
	return s.nextDue
}

// Runs возвращает число выполненных запусков.
func (s *Scheduler) Runs() int {
	return s.runs
}

// Done сообщает, что достигнут MaxRuns.
func (s *Scheduler) Done() bool {
	return s.maxRuns > 0 && s.runs >= s.maxRuns
}

// Tick выполняет Job, если наступил next_due, и вычисляет следующий срок.
// Возвращает true, если Job запускался.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) bool {
	if s.Done() || now.Before(s.nextDue) {
		return false
	}

	due := s.nextDue
	s.logger.Info("scheduled run triggered", "due", due, "cron", s.expr)

	start := time.Now()
	if err := s.job(ctx, due); err != nil {
		s.logger.Error("scheduled run failed", "due", due, "error", err)
	} else {
		s.logger.Info("scheduled run completed", "due", due, "duration", time.Since(start))
	}
	s.runs++

	// Следующий срок считается от момента окончания: пропущенные не догоняем.
	after := now
	if finished := now.Add(time.Since(start)); finished.After(after) {
		after = finished
	}
	next, err := CalculateNextDue(s.expr, s.loc, after)
	if err != nil {
		// Выражение уже проверено в New.
		s.logger.Error("failed to calculate next due", "error", err)
		return true
	}
	s.nextDue = next

	if !s.Done() {
		s.logger.Info("next scheduled run", "next_due", s.nextDue)
	}
	return true
}

// Run проверяет расписание каждые TickInterval до отмены ctx или MaxRuns.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("scheduler started", "cron", s.expr, "timezone", s.loc.String(), "next_due", s.nextDue)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped", "runs", s.runs)
			return ctx.Err()
		case now := <-ticker.C:
			s.Tick(ctx, now)
			if s.Done() {
				s.logger.Info("scheduler finished", "runs", s.runs)
				return nil
			}
		}
	}
}
