// Package pgerr maps PostgreSQL driver errors onto the errs taxonomy.
//
//   - lock_not_available, serialization_failure, deadlock_detected and
//     unique_violation become *errs.ConcurrencyConflictError; the caller may retry
//   - foreign_key_violation, check_violation, numeric_value_out_of_range and
//     string_data_right_truncation become *errs.ValueIsInvalidError
//   - connection failures (class 08), cancelled contexts and anything unknown
//     become *errs.StorageError
package pgerr

import (
	"context"
	"database/sql/driver"
	"errors"
	"strings"

	"textile/internal/pkg/errs"

	"github.com/lib/pq"
)

// SQLSTATE codes the service reacts to.
const (
	StringTruncation     = "22001"
	NumericOutOfRange    = "22003"
	UniqueViolation      = "23505"
	ForeignKeyViolation  = "23503"
	CheckViolation       = "23514"
	SerializationFailure = "40001"
	DeadlockDetected     = "40P01"
	LockNotAvailable     = "55P03"
)

type sqlStateError interface {
	SQLState() string
}

// Code returns the SQLSTATE carried by err, or "" if it has none.
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	var stateErr sqlStateError
	if errors.As(err, &stateErr) {
		return stateErr.SQLState()
	}

	return ""
}

// Translate classifies err for an operation on entity id. Errors already in the
// taxonomy are returned unchanged; nil stays nil.
func Translate(err error, operation, entity string, id any) error {
	if err == nil || isClassified(err) {
		return err
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return errs.NewStorageError(operation, err)
	}

	code := Code(err)
	switch code {
	case LockNotAvailable, SerializationFailure, DeadlockDetected, UniqueViolation:
		return errs.NewConcurrencyConflictErrorWithCause(entity, id, err)
	case ForeignKeyViolation, CheckViolation, NumericOutOfRange, StringTruncation:
		return errs.NewValueIsInvalidErrorWithCause(entity, err)
	default:
		return errs.NewStorageError(operation, err)
	}
}

// IsConnectionFailure reports whether err comes from a lost or refused database
// connection (SQLSTATE class 08) rather than from the statement itself.
func IsConnectionFailure(err error) bool {
	return strings.HasPrefix(Code(err), "08") || errors.Is(err, driver.ErrBadConn)
}

func isClassified(err error) bool {
	return errors.Is(err, errs.ErrConcurrencyConflict) ||
		errors.Is(err, errs.ErrObjectNotFound) ||
		errors.Is(err, errs.ErrStorageUnavailable) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsOutOfRange)
}
