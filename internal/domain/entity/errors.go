package entity

import (
	"errors"
	"fmt"
)

// ErrValidationFailed is the sentinel matched by errors.Is for every
// validation failure in this package.
var ErrValidationFailed = errors.New("validation failed")

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Unwrap makes every ValidationError match ErrValidationFailed via errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
