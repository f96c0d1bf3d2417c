package strategy

import "errors"

var (
	// ErrInvalidWorkerCount: отрицательное число воркеров.
	ErrInvalidWorkerCount = errors.New("invalid worker count")

	// ErrTasksFailed: часть задач параллельного run'а завершилась ошибкой.
	ErrTasksFailed = errors.New("tasks failed")

	// ErrLaunch: не удалось запустить воркера.
	ErrLaunch = errors.New("failed to launch worker")

	// ErrReport: отчёт воркера-процесса не удалось прочитать.
	ErrReport = errors.New("unreadable worker report")
)
