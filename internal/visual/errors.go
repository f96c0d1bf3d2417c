package visual

import "errors"

var (
	// ErrGeneration: не удалось построить visual story.
	ErrGeneration = errors.New("visual story generation failed")

	// ErrStyleNotFound: стиль не зарегистрирован в Registry.
	ErrStyleNotFound = errors.New("style not found")
)
