package services

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an event or invitation looked up by its public
// identifier does not exist.
var ErrNotFound = errors.New("not found")

// ErrSaveFailed hides storage-layer failures from callers. The root cause is
// logged, not returned.
var ErrSaveFailed = errors.New("unable to save")

// ValidationError carries per-field problems that the caller can act on.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
