package kernel

import (
	"math"
	"strconv"

	"textile/internal/pkg/errs"
)

// ErrIDIsNotConstructed indicates that an ID was not initialized through NewID or MustNewID.
// This error is returned when validating a zero-value ID.
var ErrIDIsNotConstructed = errs.NewValueIsRequiredError("ID must be created via NewID")

// ID is a value object for the numeric identifiers handed out by the ledger store.
// Every table keeps a bigserial key; repositories reserve the next value before an
// aggregate is built, so aggregates are never observed without an identity.
//
// The zero value of ID is invalid.
//
// Example:
//
//	id, err := kernel.NewID(42)
//	if err != nil {
//	    return fmt.Errorf("invalid order id: %w", err)
//	}
//	fmt.Println(id) // "42"
type ID struct {
	value int64
}

// NewID wraps a positive integer identifier.
//
// Returns:
//   - ID if value is greater than zero
//   - *errs.ValueIsOutOfRangeError otherwise
func NewID(value int64) (ID, error) {
	if value <= 0 {
		return ID{}, errs.NewValueIsOutOfRangeError("id", value, int64(1), int64(math.MaxInt64))
	}
	return ID{value: value}, nil
}

// MustNewID is NewID for values known to be valid, such as literals in tests.
// It panics on invalid input.
func MustNewID(value int64) ID {
	id, err := NewID(value)
	if err != nil {
		panic(err)
	}
	return id
}

// IDFromString parses a decimal identifier, typically from a path parameter.
func IDFromString(s string) (ID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return ID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return NewID(v)
}

// Int64 returns the raw identifier for persistence and transport.
func (i ID) Int64() int64 {
	return i.value
}

// String returns the decimal representation of the identifier.
func (i ID) String() string {
	return strconv.FormatInt(i.value, 10)
}

// IsEqual compares two identifiers by value.
func (i ID) IsEqual(other ID) bool {
	return i.value == other.value
}

// Less orders identifiers ascending, which is also creation order.
func (i ID) Less(other ID) bool {
	return i.value < other.value
}

// Validate returns ErrIDIsNotConstructed for the zero value.
func (i ID) Validate() error {
	if i.value <= 0 {
		return ErrIDIsNotConstructed
	}
	return nil
}
