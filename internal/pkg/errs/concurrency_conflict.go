package errs

import (
	"errors"
	"fmt"
)

// ErrConcurrencyConflict marks a request that lost a race for the same rows.
// Callers are expected to re-read and retry.
var ErrConcurrencyConflict = errors.New("concurrency conflict")

type ConcurrencyConflictError struct {
	Entity string
	ID     any
	Cause  error
}

func NewConcurrencyConflictErrorWithCause(entity string, id any, cause error) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{
		Entity: entity,
		ID:     id,
		Cause:  cause,
	}
}

func NewConcurrencyConflictError(entity string, id any) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{
		Entity: entity,
		ID:     id,
	}
}

func (e *ConcurrencyConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s %v (cause: %v)", ErrConcurrencyConflict, e.Entity, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s %v", ErrConcurrencyConflict, e.Entity, e.ID)
}

func (e *ConcurrencyConflictError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrConcurrencyConflict, e.Cause}
	}
	return []error{ErrConcurrencyConflict}
}
