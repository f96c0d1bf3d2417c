package worker

import "fmt"

// Scope: что выполняется внутри эксклюзивной области.
type Scope string

const (
	// ScopePipeline: всё тело задачи.
	ScopePipeline Scope = "pipeline"

	// ScopePersist: только сохранение артефакта.
	ScopePersist Scope = "persist"
)

// ParseScope разбирает Scope; пустая строка означает ScopePipeline.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case "", ScopePipeline:
		return ScopePipeline, nil
	case ScopePersist:
		return ScopePersist, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownScope, s)
	}
}
