package worker

import (
	"errors"
	"fmt"
)

// Ошибки воркера.
var (
	// ErrTaskPanicked: тело задачи запаниковало.
	ErrTaskPanicked = errors.New("task panicked")

	// ErrUnknownScope: неизвестная эксклюзивная область.
	ErrUnknownScope = errors.New("unknown exclusive scope")

	// ErrReceive: воркер не смог получить элемент из очереди.
	ErrReceive = errors.New("receive from queue failed")

	// ErrNoQueue: воркер создан без очереди.
	ErrNoQueue = errors.New("worker has no queue")

	// ErrWorkerFailed: воркер завершился, не дочитав очередь до sentinel.
	ErrWorkerFailed = errors.New("worker failed")
)

// TaskError: ошибка обработки конкретной задачи.
type TaskError struct {
	Task string
	Err  error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task %s: %v", e.Task, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}
