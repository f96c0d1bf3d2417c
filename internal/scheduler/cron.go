package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// cronParser: 5 полей или дескриптор (@hourly, @every 1h30m).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// CalculateNextDue вычисляет следующее время запуска после from
// в часовом поясе loc. Возвращает время в UTC.
func CalculateNextDue(cronExpr string, loc *time.Location, from time.Time) (time.Time, error) {
	schedule, err := cronParser.Parse(cronExpr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %w", ErrInvalidCron, cronExpr, err)
	}

	if loc == nil {
		loc = time.UTC
	}

	return schedule.Next(from.In(loc)).UTC(), nil
}

// ValidateCronExpr проверяет валидность cron-выражения.
func ValidateCronExpr(cronExpr string) error {
	if _, err := cronParser.Parse(cronExpr); err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidCron, cronExpr, err)
	}
	return nil
}

// LoadLocation загружает часовой пояс; пустое имя означает UTC.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidTimezone, name, err)
	}
	return loc, nil
}
