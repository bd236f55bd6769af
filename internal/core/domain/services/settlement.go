package services

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"textile/internal/core/domain/model/finance"
	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/errs"
)

var (
	// ErrSelectionIsEmpty is returned when a payment batch is requested without orders.
	ErrSelectionIsEmpty = errors.New("no orders selected for settlement")

	// ErrOrderHasNoUnsettledEntry is returned when a selected order has no unsettled
	// finance entry, either because it was never delivered or because it was already paid.
	ErrOrderHasNoUnsettledEntry = errors.New("order has no unsettled finance entry")
)

// Settlement is a domain service that groups unsettled finance entries into a
// payment batch.
//
// Business rules:
//   - the selection must not be empty
//   - every selected order must have exactly one unsettled entry
//   - the batch total is the sum of the cost of the settled entries
//   - the batch is created and the entries are settled together, or nothing changes
//
// Example usage:
//
//	settlement := services.NewSettlement()
//	batch, err := settlement.Settle(batchID, orderIDs, entries, time.Now())
//	if errors.Is(err, services.ErrOrderHasNoUnsettledEntry) {
//	    // reject the request, nothing was settled
//	}
type Settlement struct{}

// NewSettlement creates a new Settlement instance.
func NewSettlement() Settlement {
	return Settlement{}
}

// Settle builds a payment batch for the selected orders and marks their entries settled.
//
// Parameters:
//   - batchID: identifier reserved for the new batch
//   - orderIDs: the selected orders; duplicates are ignored
//   - entries: the unsettled entries found for those orders
//   - now: settlement time
//
// Returns:
//   - *finance.PaymentBatch with the computed total
//   - *errs.ValueIsRequiredError wrapping ErrSelectionIsEmpty for an empty selection
//   - *errs.ValueIsInvalidError wrapping ErrOrderHasNoUnsettledEntry listing the offending ids
//
// Entries are only mutated after every check passed.
func (s Settlement) Settle(
	batchID kernel.ID,
	orderIDs []kernel.ID,
	entries []*finance.Entry,
	now time.Time,
) (*finance.PaymentBatch, error) {
	selected := uniqueIDs(orderIDs)
	if len(selected) == 0 {
		return nil, errs.NewValueIsRequiredErrorWithCause("order_ids", ErrSelectionIsEmpty)
	}

	byOrder, err := s.indexEntries(selected, entries)
	if err != nil {
		return nil, err
	}

	var missing []string
	total := kernel.ZeroMoney()
	for _, id := range selected {
		entry, ok := byOrder[id.Int64()]
		if !ok {
			missing = append(missing, id.String())
			continue
		}
		total = total.Add(entry.Cost())
	}
	if len(missing) > 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("order_ids",
			fmt.Errorf("%w: %v", ErrOrderHasNoUnsettledEntry, missing))
	}

	batch, err := finance.NewPaymentBatch(batchID, total, now)
	if err != nil {
		return nil, err
	}

	for _, id := range selected {
		if err := byOrder[id.Int64()].Settle(batch.ID()); err != nil {
			return nil, err
		}
	}

	return batch, nil
}

// indexEntries validates the loaded entries and keys them by order id.
func (s Settlement) indexEntries(selected []kernel.ID, entries []*finance.Entry) (map[int64]*finance.Entry, error) {
	byOrder := make(map[int64]*finance.Entry, len(entries))
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if e.IsSettled() {
			return nil, errs.NewValueIsInvalidErrorWithCause("finance_entry",
				fmt.Errorf("%w: entry %s", finance.ErrEntryIsAlreadySettled, e.ID()))
		}
		if !slices.ContainsFunc(selected, e.OrderID().IsEqual) {
			return nil, errs.NewValueIsInvalidErrorWithCause("finance_entry",
				fmt.Errorf("entry %s belongs to order %s which was not selected", e.ID(), e.OrderID()))
		}
		if _, dup := byOrder[e.OrderID().Int64()]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("finance_entry",
				fmt.Errorf("order %s has more than one unsettled entry", e.OrderID()))
		}
		byOrder[e.OrderID().Int64()] = e
	}
	return byOrder, nil
}

func uniqueIDs(ids []kernel.ID) []kernel.ID {
	seen := make(map[int64]bool, len(ids))
	out := make([]kernel.ID, 0, len(ids))
	for _, id := range ids {
		if seen[id.Int64()] {
			continue
		}
		seen[id.Int64()] = true
		out = append(out, id)
	}
	return out
}
