package domain

// RunStatus: статус выполнения run.
//
// Жизненный цикл:
//
//	PENDING → RUNNING → SUCCEEDED
//	                  ↘ FAILED
type RunStatus string

const (
	RunStatusPending   RunStatus = "PENDING"
	RunStatusRunning   RunStatus = "RUNNING"
	RunStatusSucceeded RunStatus = "SUCCEEDED"
	RunStatusFailed    RunStatus = "FAILED"
)

// IsTerminal возвращает true, если статус финальный (run завершён).
func (s RunStatus) IsTerminal() bool {
	switch s {
	case RunStatusSucceeded, RunStatusFailed:
		return true
	default:
		return false
	}
}

// TaskStatus: статус обработки задачи.
//
// Жизненный цикл (повторов нет):
//
//	RUNNING → SUCCEEDED
//	        ↘ FAILED
type TaskStatus string

const (
	// TaskStatusRunning: задача взята воркером и обрабатывается.
	TaskStatusRunning TaskStatus = "RUNNING"

	// TaskStatusSucceeded: артефакт сохранён.
	TaskStatusSucceeded TaskStatus = "SUCCEEDED"

	// TaskStatusFailed: конвейер вернул ошибку.
	TaskStatusFailed TaskStatus = "FAILED"
)

// IsTerminal возвращает true, если статус финальный.
func (s TaskStatus) IsTerminal() bool {
	switch s {
	case TaskStatusSucceeded, TaskStatusFailed:
		return true
	default:
		return false
	}
}
