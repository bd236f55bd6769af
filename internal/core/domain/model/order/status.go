package order

import (
	"fmt"

	"textile/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions (see DefaultTransitionTable):
//
//	CREATED                ──> AWAITING_CONFECTION     send to supplier
//	AWAITING_CONFECTION    ──> IN_STOCK                arrived conforming
//	AWAITING_CONFECTION    ──> RECEIVED_NONCONFORMING  arrived non-conforming
//	AWAITING_CONFECTION    ──> CREATED                 return to edit
//	RECEIVED_NONCONFORMING ──> AWAITING_CONFECTION     register nonconformity and resend
//	IN_STOCK               ──> DELIVERED               complete delivery
//	IN_STOCK               ──> AWAITING_CONFECTION     return to confection
//
// SENT_TO_SUPPLIER, RECEIVED_CONFORMING and FINANCIALLY_FINALIZED are reserved:
// they are valid values but no transition reaches them.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status after intake. Pricing and notes are editable.
	Created

	// SentToSupplier is reserved for a future two-step dispatch.
	SentToSupplier

	// AwaitingConfection means the order was sent to the supplier and is being made.
	AwaitingConfection

	// ReceivedConforming is reserved; conforming arrivals go straight to InStock.
	ReceivedConforming

	// ReceivedNonConforming means the supplier delivery did not match the order.
	ReceivedNonConforming

	// InStock means the finished piece is waiting for the customer.
	InStock

	// Delivered is final. The delivery produced the order's finance entry.
	Delivered

	// FinanciallyFinalized is reserved; settlement is tracked on finance entries instead.
	FinanciallyFinalized
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:               "UNKNOWN",
		Created:               "CREATED",
		SentToSupplier:        "SENT_TO_SUPPLIER",
		AwaitingConfection:    "AWAITING_CONFECTION",
		ReceivedConforming:    "RECEIVED_CONFORMING",
		ReceivedNonConforming: "RECEIVED_NONCONFORMING",
		InStock:               "IN_STOCK",
		Delivered:             "DELIVERED",
		FinanciallyFinalized:  "FINANCIALLY_FINALIZED",
	}
}

// AllStatuses returns every valid status in declaration order.
func AllStatuses() []Status {
	return []Status{
		Created,
		SentToSupplier,
		AwaitingConfection,
		ReceivedConforming,
		ReceivedNonConforming,
		InStock,
		Delivered,
		FinanciallyFinalized,
	}
}

// Validate checks if the Status value is one of the declared states.
//
// Returns:
//   - nil if the status is valid
//   - *errs.ValueIsInvalidError if the status is Unknown or out of range
//
// Statuses read from the database or the API must pass Validate before use.
func (s Status) Validate() error {
	if s <= Unknown || s > FinanciallyFinalized {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status, or "UNKNOWN" for invalid values.
//
// Example:
//
//	fmt.Println(order.InStock) // Output: "IN_STOCK"
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsReserved reports whether the status is declared for future workflows and
// must not be reachable through the transition table today.
func (s Status) IsReserved() bool {
	return s == SentToSupplier || s == ReceivedConforming || s == FinanciallyFinalized
}

// StatusFromString parses a persisted or transported status name.
//
// Returns:
//   - the matching Status
//   - *errs.ValueIsInvalidError if the name is not a valid status
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}
