package util

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrAssessmentNotFound  = fmt.Errorf("assessment %w", ErrNotFound)
	ErrResultNotFound      = fmt.Errorf("assessment result %w", ErrNotFound)
	ErrPlanNotFound        = fmt.Errorf("learning plan %w", ErrNotFound)
	ErrSessionNotFound     = fmt.Errorf("learning session %w", ErrNotFound)
	ErrChapterNotFound     = fmt.Errorf("chapter %w", ErrNotFound)
	ErrSectionNotFound     = fmt.Errorf("section %w", ErrNotFound)
	ErrInvalidInput        = errors.New("invalid input")
	ErrPersistence         = errors.New("persistence failure")
	ErrUpstreamUnavailable = errors.New("generation service unavailable")
)

// ValidationError reports an unrecognized catalog value together with the
// accepted keys.
type ValidationError struct {
	Field string
	Value string
	Valid []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q. Available %ss: %s", e.Field, e.Value, e.Field, strings.Join(e.Valid, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func NewValidationError(field, value string, valid []string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Valid: valid}
}

// Persistence wraps a store failure so callers can map it to a 500.
func Persistence(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}
