package worker

import (
	"errors"
	"time"

	"github.com/shaiso/Kannon/internal/domain"
)

// Result: итог обработки одной задачи.
type Result struct {
	Task     string        `json:"task"`
	WorkerID int           `json:"worker_id"`
	Path     string        `json:"path,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`

	// Err: исходная ошибка. Не переживает передачу между процессами,
	// там остаётся только Error.
	Err error `json:"-"`
}

// Failed возвращает true для неуспешной задачи.
func (r Result) Failed() bool {
	return r.Err != nil || r.Error != ""
}

// Cause возвращает ошибку задачи как *TaskError.
func (r Result) Cause() error {
	if !r.Failed() {
		return nil
	}
	err := r.Err
	if err == nil {
		err = errors.New(r.Error)
	}
	return &TaskError{Task: r.Task, Err: err}
}

func newResult(task domain.Task, workerID int, path string, err error, d time.Duration) Result {
	res := Result{
		Task:     task.Name,
		WorkerID: workerID,
		Path:     path,
		Duration: d,
		Err:      err,
	}
	if err != nil {
		res.Path = ""
		res.Error = err.Error()
	}
	return res
}

// Report: итог работы одного воркера.
type Report struct {
	WorkerID int      `json:"worker_id"`
	Results  []Result `json:"results"`
}

// Succeeded возвращает число успешных задач.
func (r *Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if !res.Failed() {
			n++
		}
	}
	return n
}

// Failures возвращает неуспешные задачи.
func (r *Report) Failures() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Failed() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Err объединяет ошибки всех неуспешных задач; nil, если их нет.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Failures() {
		errs = append(errs, res.Cause())
	}
	return errors.Join(errs...)
}
