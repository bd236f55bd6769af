package errs

import (
	"errors"
	"fmt"
)

var ErrStorageUnavailable = errors.New("storage is unavailable")

// StorageError wraps a failure of the underlying store. The request that hit it
// has been rolled back and is not retried.
type StorageError struct {
	Operation string
	Cause     error
}

func NewStorageError(operation string, cause error) *StorageError {
	return &StorageError{
		Operation: operation,
		Cause:     cause,
	}
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrStorageUnavailable, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrStorageUnavailable, e.Operation)
}

func (e *StorageError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrStorageUnavailable, e.Cause}
	}
	return []error{ErrStorageUnavailable}
}
