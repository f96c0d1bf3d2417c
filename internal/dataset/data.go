package dataset

import (
	"strings"
	"time"
)

// Status: статус задачи проекта на таймлайне.
type Status string

const (
	StatusCompleted  Status = "Completed"
	StatusInProgress Status = "In Progress"
	StatusPending    Status = "Pending"
)

// NormalizeStatus приводит произвольную строку к известному статусу.
// Неизвестные значения считаются Pending.
func NormalizeStatus(s string) Status {
	switch strings.ToLower(strings.Join(strings.Fields(s), " ")) {
	case "completed", "done":
		return StatusCompleted
	case "in progress", "in-progress", "in_progress":
		return StatusInProgress
	default:
		return StatusPending
	}
}

// Record: одна строка датасета.
type Record struct {
	Task   string
	Start  time.Time
	End    time.Time
	Status Status

	// Duration: длительность в днях, заполняется Check.
	Duration int
}

// Data: загруженный датасет.
type Data struct {
	// Source: путь, из которого загружены данные.
	Source string

	Records []Record
}

// MaxDuration возвращает максимальную длительность среди записей.
func (d *Data) MaxDuration() int {
	maxDays := 0
	for _, r := range d.Records {
		maxDays = max(maxDays, r.Duration)
	}
	return maxDays
}

// Len возвращает количество записей.
func (d *Data) Len() int {
	return len(d.Records)
}
