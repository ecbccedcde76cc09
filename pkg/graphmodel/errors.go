package graphmodel

import (
	"errors"
	"fmt"
)

// ValidationError reports a structural problem in a graph model definition.
// Model validation is fatal: no DDL or migration work starts on a model that
// failed to validate.
type ValidationError struct {
	Entity string // node name or relationship type the problem belongs to
	Msg    string
}

func (e *ValidationError) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf("invalid graph model: %s", e.Msg)
	}
	return fmt.Sprintf("invalid graph model: %s: %s", e.Entity, e.Msg)
}

// IsValidationError reports whether err is a model validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func validationErrorf(entity, format string, args ...interface{}) error {
	return &ValidationError{Entity: entity, Msg: fmt.Sprintf(format, args...)}
}
