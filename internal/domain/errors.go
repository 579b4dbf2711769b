package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidSelection is the only error the computation engine returns.
var ErrInvalidSelection = errors.New("invalid selection")

// ValidationError describes a missing or malformed user input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidSelection
}

// InvalidSelection builds a ValidationError for field.
func InvalidSelection(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
