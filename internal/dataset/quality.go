package dataset

import (
	"fmt"
	"strings"
	"time"
)

const day = 24 * time.Hour

// Checker проверяет качество загруженных данных.
type Checker struct{}

// NewChecker создаёт Checker.
func NewChecker() *Checker {
	return &Checker{}
}

// Check возвращает нормализованную копию данных.
//
// Имена задач обрезаются, статусы приводятся к известным,
// длительность считается в целых днях. Исходные данные не меняются.
func (c *Checker) Check(data *Data) (*Data, error) {
	if data == nil || len(data.Records) == 0 {
		return nil, fmt.Errorf("%w: dataset has no records", ErrDataQuality)
	}

	out := &Data{
		Source:  data.Source,
		Records: make([]Record, 0, len(data.Records)),
	}

	for i, r := range data.Records {
		name := strings.TrimSpace(r.Task)
		if name == "" {
			return nil, fmt.Errorf("%w: record %d has empty task name", ErrDataQuality, i)
		}
		if r.End.Before(r.Start) {
			return nil, fmt.Errorf("%w: task %q ends before it starts", ErrDataQuality, name)
		}

		out.Records = append(out.Records, Record{
			Task:     name,
			Start:    r.Start,
			End:      r.End,
			Status:   NormalizeStatus(string(r.Status)),
			Duration: int(r.End.Sub(r.Start) / day),
		})
	}

	return out, nil
}
