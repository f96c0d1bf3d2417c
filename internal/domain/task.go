package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// taskNamePrefix задаёт префикс имён задач: story_0, story_1, ...
const taskNamePrefix = "story_"

// Task описывает одну единицу работы (Task Descriptor).
//
// Task неизменяем после создания. Идентичность задаётся Name,
// имена уникальны в пределах одного run.
type Task struct {
	// Dataset: путь к входному датасету.
	Dataset string `json:"dataset"`

	// Name: имя задачи, из него строится имя файла результата.
	Name string `json:"name"`
}

// TaskName возвращает имя задачи по её порядковому номеру.
func TaskName(index int) string {
	return fmt.Sprintf("%s%d", taskNamePrefix, index)
}

// String нужен для логов в стиле "Processing task: ...".
func (t Task) String() string {
	return fmt.Sprintf("{dataset: %s, name: %s}", t.Dataset, t.Name)
}

// TaskAttempt фиксирует обработку одной задачи конкретным воркером.
//
// Используется журналом run'а и метриками. Ядро не хранит попытки,
// повторов нет: на каждую задачу приходится ровно одна попытка.
type TaskAttempt struct {
	// RunID: родительский run.
	RunID uuid.UUID `json:"run_id"`

	// Name: имя задачи (Task.Name).
	Name string `json:"name"`

	// WorkerID: номер воркера, 0 для последовательного режима.
	WorkerID int `json:"worker_id"`

	// Status: текущий статус попытки.
	Status TaskStatus `json:"status"`

	// Path: путь к сохранённому артефакту (после успеха).
	Path string `json:"path,omitempty"`

	// Error: текст ошибки при неудаче.
	Error string `json:"error,omitempty"`

	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// NewTaskAttempt создаёт попытку в статусе RUNNING.
func NewTaskAttempt(runID uuid.UUID, name string, workerID int) *TaskAttempt {
	return &TaskAttempt{
		RunID:     runID,
		Name:      name,
		WorkerID:  workerID,
		Status:    TaskStatusRunning,
		StartedAt: time.Now(),
	}
}

// Duration возвращает продолжительность обработки.
func (a *TaskAttempt) Duration() time.Duration {
	if a.FinishedAt == nil {
		return 0
	}
	return a.FinishedAt.Sub(a.StartedAt)
}

// MarkSucceeded переводит попытку в SUCCEEDED.
func (a *TaskAttempt) MarkSucceeded(path string) {
	now := time.Now()
	a.Status = TaskStatusSucceeded
	a.Path = path
	a.FinishedAt = &now
}

// MarkFailed переводит попытку в FAILED.
func (a *TaskAttempt) MarkFailed(err error) {
	now := time.Now()
	a.Status = TaskStatusFailed
	a.FinishedAt = &now
	if err != nil {
		a.Error = err.Error()
	}
}
