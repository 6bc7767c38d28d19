package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrRoutineNotFound    = errors.New("routine not found")
	ErrCompletionNotFound = errors.New("completion not found")
	ErrDuplicateRoutineID = errors.New("routine id already exists")
	ErrInvalidDayIndex    = errors.New("invalid day index (must be 0-6)")
	ErrIndexOutOfRange    = errors.New("exercise index out of range")
)

// ValidationError reports a single rejected field. It matches ErrValidation
// under errors.Is.
type ValidationError struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
	Message    string `json:"message"`
}

func NewValidationError(field, constraint, message string) *ValidationError {
	return &ValidationError{Field: field, Constraint: constraint, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
