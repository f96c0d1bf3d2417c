package dataset

import "errors"

// Ошибки датасета.
var (
	// ErrDataLoad: файл не читается или имеет неверный формат.
	ErrDataLoad = errors.New("data load failed")

	// ErrDataQuality: данные загружены, но не прошли проверку качества.
	ErrDataQuality = errors.New("data quality check failed")
)
