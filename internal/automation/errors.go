package automation

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure from the builder.
var ErrInvalidConfig = errors.New("invalid automation config")

// ErrUnknownFormat is returned by Encode for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// ValidationError describes one rule the assembled config violates.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets callers match any validation failure with errors.Is(err, ErrInvalidConfig)
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

// NewValidationError creates a validation error for field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
