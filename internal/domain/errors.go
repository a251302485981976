package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateSlug is returned when an event write violates the unique
	// slug constraint.
	ErrDuplicateSlug = errors.New("slug already in use")

	// ErrEventNotFound is returned when a booking references an event that
	// does not exist.
	ErrEventNotFound = errors.New("referenced event does not exist")

	// ErrInvalidInput is returned for malformed identifiers and parameters.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError rejects a write and names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
