package domain

import (
	"time"

	"github.com/google/uuid"
)

// Run: один запуск пакетной генерации visual stories.
//
// Run создаётся драйвером перед построением задач и финализируется,
// когда все задачи обработаны (или последовательный режим прерван ошибкой).
type Run struct {
	// ID: уникальный идентификатор run.
	ID uuid.UUID `json:"id"`

	// Dataset: путь к входному датасету, общий для всех задач.
	Dataset string `json:"dataset"`

	// Style: художественный стиль.
	Style Style `json:"style"`

	// OutputDir: каталог для артефактов.
	OutputDir string `json:"output_dir"`

	// Iterations: количество задач.
	Iterations int `json:"iterations"`

	// Workers: количество воркеров, 0 означает последовательный режим.
	Workers int `json:"workers"`

	// Status: текущий статус выполнения.
	Status RunStatus `json:"status"`

	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`

	// Error: текст ошибки, если run завершился с FAILED.
	Error string `json:"error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// NewRun создаёт run в статусе PENDING.
func NewRun(dataset string, style Style, outputDir string, iterations, workers int) *Run {
	return &Run{
		ID:         uuid.New(),
		Dataset:    dataset,
		Style:      style,
		OutputDir:  outputDir,
		Iterations: iterations,
		Workers:    workers,
		Status:     RunStatusPending,
		CreatedAt:  time.Now(),
	}
}

// IsParallel возвращает true, если run распределяется по воркерам.
func (r *Run) IsParallel() bool {
	return r.Workers > 0
}

// Duration возвращает продолжительность выполнения.
// Возвращает 0, если run ещё не завершён.
func (r *Run) Duration() time.Duration {
	if r.StartedAt == nil || r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(*r.StartedAt)
}

// IsFinished возвращает true, если run завершён.
func (r *Run) IsFinished() bool {
	return r.Status.IsTerminal()
}

// MarkRunning переводит run в статус RUNNING.
func (r *Run) MarkRunning() {
	now := time.Now()
	r.Status = RunStatusRunning
	r.StartedAt = &now
}

// MarkSucceeded переводит run в статус SUCCEEDED.
func (r *Run) MarkSucceeded() {
	now := time.Now()
	r.Status = RunStatusSucceeded
	r.FinishedAt = &now
}

// MarkFailed переводит run в статус FAILED с ошибкой.
func (r *Run) MarkFailed(err error) {
	now := time.Now()
	r.Status = RunStatusFailed
	r.FinishedAt = &now
	if err != nil {
		r.Error = err.Error()
	}
}
