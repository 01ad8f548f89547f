package schema

import (
	"errors"
	"fmt"
)

// RequiredError reports a required field whose key was missing from the
// input mapping.
type RequiredError struct {
	Field string
}

func (e *RequiredError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// NullableError reports a field that was supplied with the kind-appropriate
// empty value while the field is not nullable.
type NullableError struct {
	Field string
}

func (e *NullableError) Error() string {
	return fmt.Sprintf("%s must not be empty", e.Field)
}

// ValidationError reports a value that violated a kind's semantic
// constraint.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
