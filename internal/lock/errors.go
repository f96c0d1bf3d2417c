package lock

import "errors"

var (
	// ErrLockAcquire: ошибка бэкенда при захвате области.
	ErrLockAcquire = errors.New("failed to acquire exclusive region")

	// ErrLockRelease: ошибка бэкенда при освобождении области.
	ErrLockRelease = errors.New("failed to release exclusive region")
)
