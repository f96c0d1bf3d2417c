package scheduler

import "errors"

var (
	// ErrInvalidCron: некорректное cron-выражение.
	ErrInvalidCron = errors.New("invalid cron expression")

	// ErrInvalidTimezone: неизвестный часовой пояс.
	ErrInvalidTimezone = errors.New("invalid timezone")

	// ErrNoJob: Scheduler создан без Job.
	ErrNoJob = errors.New("scheduler has no job")
)
