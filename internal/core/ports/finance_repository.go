package ports

import (
	"context"

	"textile/internal/core/domain/model/finance"
	"textile/internal/core/domain/model/kernel"
)

// FinanceEntryRepository defines the persistence contract for finance entries.
// Entries are never deleted.
type FinanceEntryRepository interface {
	NextID(ctx context.Context) (kernel.ID, error)

	// Add persists a new entry. A second entry for the same order is rejected with
	// *errs.ConcurrencyConflictError.
	Add(ctx context.Context, entry *finance.Entry) error

	// ExistsForOrder reports whether the order has any finance entry, settled or not.
	ExistsForOrder(ctx context.Context, orderID kernel.ID) (bool, error)

	// GetUnsettledForUpdate returns the unsettled entries of the given orders and locks
	// them without waiting. Orders without an unsettled entry are simply absent
	// from the result.
	GetUnsettledForUpdate(ctx context.Context, orderIDs []kernel.ID) ([]*finance.Entry, error)

	// Settle persists the settlement of an entry. Only an unsettled row is updated;
	// a row settled in the meantime yields *errs.ConcurrencyConflictError.
	Settle(ctx context.Context, entry *finance.Entry) error
}

// PaymentBatchRepository stores immutable payment batches.
type PaymentBatchRepository interface {
	NextID(ctx context.Context) (kernel.ID, error)
	Add(ctx context.Context, batch *finance.PaymentBatch) error
	Get(ctx context.Context, id kernel.ID) (*finance.PaymentBatch, error)
}
