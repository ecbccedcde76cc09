package versioning

import (
	"errors"
	"fmt"
)

// Resolution failure kinds. Callers match these with errors.Is.
var (
	ErrNoVersionAtDate  = errors.New("no version valid at date")
	ErrNoCurrentVersion = errors.New("no current version")
	ErrAmbiguousVersion = errors.New("ambiguous version")
)

// ResolutionError reports a failed version resolution. It is surfaced to the
// caller and never retried.
type ResolutionError struct {
	EntityID string
	Kind     error
	Detail   string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("version resolution for %s: %v: %s", e.EntityID, e.Kind, e.Detail)
}

func (e *ResolutionError) Unwrap() error {
	return e.Kind
}
