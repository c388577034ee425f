package services

import (
	"errors"
	"fmt"

	"github.com/workoutdiary/workoutdiary/internal/credentials"
)

var (
	// ErrValidationFailed marks client-correctable input problems. Concrete failures are
	// reported as *ValidationError, which unwraps to this value.
	ErrValidationFailed = errors.New("validation failed")
	// ErrEmailAlreadyRegistered indicates an account already owns the normalised email.
	ErrEmailAlreadyRegistered = errors.New("accounts: email already registered")
	// ErrInvalidOrExpiredCode covers unknown, consumed, superseded and expired one-time codes.
	ErrInvalidOrExpiredCode = errors.New("accounts: invalid or expired code")
	// ErrAccountNotFound indicates no account matches the lookup.
	ErrAccountNotFound = errors.New("accounts: not found")
	// ErrWorkoutNotFound indicates the workout does not exist for the given user.
	ErrWorkoutNotFound = errors.New("workouts: not found")
	// ErrStorageUnavailable wraps infrastructure failures of the backing store.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ValidationError carries the field-level detail of a rejected input.
type ValidationError struct {
	Violations credentials.Violations
}

func (e *ValidationError) Error() string {
	if e == nil || e.Violations.Empty() {
		return ErrValidationFailed.Error()
	}
	return ErrValidationFailed.Error() + ": " + e.Violations.Error()
}

// Unwrap allows errors.Is(err, ErrValidationFailed).
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

func validationError(violations credentials.Violations) error {
	return &ValidationError{Violations: violations}
}

func fieldRequired(field string) error {
	return validationError(credentials.Violations{{Field: field, Reason: field + " is required"}})
}

// storageError tags an infrastructure failure so callers can tell it apart from domain errors.
func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}
