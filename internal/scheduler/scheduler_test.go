package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"
)

// --- Cron Tests ---

func TestCalculateNextDue(t *testing.T) {
	from := time.Date(2024, 3, 10, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		expr string
		loc  string
		want time.Time
	}{
		{"every hour", "0 * * * *", "", time.Date(2024, 3, 10, 11, 0, 0, 0, time.UTC)},
		{"daily at 3", "0 3 * * *", "", time.Date(2024, 3, 11, 3, 0, 0, 0, time.UTC)},
		{"descriptor", "@every 15m", "", time.Date(2024, 3, 10, 10, 45, 0, 0, time.UTC)},
		// 03:00 в Токио (UTC+9) = 18:00 UTC предыдущего дня.
		{"timezone", "0 3 * * *", "Asia/Tokyo", time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.loc)
			if err != nil {
				t.Skipf("timezone data unavailable: %v", err)
			}
			got, err := CalculateNextDue(tt.expr, loc, from)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestValidateCronExpr(t *testing.T) {
	valid := []string{"* * * * *", "*/5 * * * *", "0 9 * * 1-5", "@daily"}
	for _, expr := range valid {
		if err := ValidateCronExpr(expr); err != nil {
			t.Errorf("%q should be valid: %v", expr, err)
		}
	}

	invalid := []string{"", "* * *", "61 * * * *", "0 0 * * * *", "@sometimes"}
	for _, expr := range invalid {
		if err := ValidateCronExpr(expr); !errors.Is(err, ErrInvalidCron) {
			t.Errorf("%q: expected ErrInvalidCron, got %v", expr, err)
		}
	}
}

func TestLoadLocation_Invalid(t *testing.T) {
	if _, err := LoadLocation("Mars/Olympus_Mons"); !errors.Is(err, ErrInvalidTimezone) {
		t.Errorf("expected ErrInvalidTimezone, got %v", err)
	}
}

// --- Scheduler Tests ---

func TestNew_Validation(t *testing.T) {
	job := func(context.Context, time.Time) error { return nil }

	if _, err := New(Config{CronExpr: "* * * * *"}); !errors.Is(err, ErrNoJob) {
		t.Errorf("expected ErrNoJob, got %v", err)
	}
	if _, err := New(Config{CronExpr: "nope", Job: job}); !errors.Is(err, ErrInvalidCron) {
		t.Errorf("expected ErrInvalidCron, got %v", err)
	}
}

func TestTick(t *testing.T) {
	var dues []time.Time
	s, err := New(Config{
		CronExpr: "* * * * *",
		Job: func(_ context.Context, due time.Time) error {
			dues = append(dues, due)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	first := s.NextDue()
	ctx := context.Background()

	if s.Tick(ctx, first.Add(-time.Second)) {
		t.Error("should not run before due time")
	}
	if !s.Tick(ctx, first) {
		t.Fatal("should run at due time")
	}
	if len(dues) != 1 || !dues[0].Equal(first) {
		t.Errorf("expected job with due %v, got %v", first, dues)
	}
	if !s.NextDue().After(first) {
		t.Errorf("next due %v should be after %v", s.NextDue(), first)
	}
}

func TestTick_SkipsMissedSlots(t *testing.T) {
	s, _ := New(Config{
		CronExpr: "* * * * *",
		Job:      func(context.Context, time.Time) error { return nil },
	})

	// Тик пришёл с опозданием на 10 минут: следующий срок считается от now.
	late := s.NextDue().Add(10 * time.Minute)
	s.Tick(context.Background(), late)

	if !s.NextDue().After(late) {
		t.Errorf("expected next due after %v, got %v", late, s.NextDue())
	}
}

func TestTick_JobErrorDoesNotStop(t *testing.T) {
	calls := 0
	s, _ := New(Config{
		CronExpr: "* * * * *",
		Job: func(context.Context, time.Time) error {
			calls++
			return errors.New("dataset missing")
		},
	})

	s.Tick(context.Background(), s.NextDue())
	s.Tick(context.Background(), s.NextDue())

	if calls != 2 {
		t.Errorf("expected job to keep running after errors, got %d calls", calls)
	}
}

func TestRun_MaxRuns(t *testing.T) {
	calls := 0
	s, _ := New(Config{
		CronExpr:     "@every 1s",
		TickInterval: 10 * time.Millisecond,
		MaxRuns:      1,
		Job: func(context.Context, time.Time) error {
			calls++
			return nil
		},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Run(ctx); err != nil {
		t.Fatalf("expected clean stop after MaxRuns, got %v", err)
	}
	if calls != 1 || !s.Done() {
		t.Errorf("expected exactly one run, got %d", calls)
	}
}

func TestRun_Cancelled(t *testing.T) {
	s, _ := New(Config{
		CronExpr:     "0 0 1 1 *",
		TickInterval: 5 * time.Millisecond,
		Job:          func(context.Context, time.Time) error { return nil },
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	if err := s.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
	if s.Runs() != 0 {
		t.Errorf("no run expected, got %d", s.Runs())
	}
}
