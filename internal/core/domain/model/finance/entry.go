package finance

import (
	"errors"
	"fmt"
	"time"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrEntryIsNotConstructed is returned when an Entry was not created through
	// NewEntry or RestoreEntry.
	ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

	// ErrEntryIsAlreadySettled is returned when a settled entry would be settled again.
	ErrEntryIsAlreadySettled = errors.New("finance entry is already settled")
)

// Entry is the monetary record created when an order is delivered.
//
// Entry follows these invariants:
//   - margin equals sale - cost as of creation and is not re-derived later
//   - settled is false until the entry is included in a batch
//   - once settled, batchID is set and the entry never changes again
type Entry struct {
	id      kernel.ID
	orderID kernel.ID
	cost    kernel.Money
	sale    kernel.Money

	// margin may be negative when an order is sold below cost
	margin decimal.Decimal

	settled   bool
	batchID   *kernel.ID
	createdAt time.Time

	isConstructed bool
}

// NewEntry snapshots cost and sale of a delivered order into an unsettled entry.
//
// Parameters:
//   - id: identifier reserved from the finance_entries sequence
//   - orderID: the delivered order
//   - cost, sale: the order prices in effect at delivery
//   - now: delivery time
//
// Returns:
//   - *Entry with margin = sale - cost and settled = false
//   - error if an identifier is invalid
//
// Example:
//
//	entry, err := finance.NewEntry(id, orderID, kernel.MustMoney("10.00"), kernel.MustMoney("25.00"), now)
//	fmt.Println(entry.Margin().StringFixed(2)) // "15.00"
func NewEntry(id, orderID kernel.ID, cost, sale kernel.Money, now time.Time) (*Entry, error) {
	if err := errors.Join(id.Validate(), requireOrderID(orderID)); err != nil {
		return nil, err
	}

	return &Entry{
		id:            id,
		orderID:       orderID,
		cost:          cost,
		sale:          sale,
		margin:        sale.Sub(cost),
		createdAt:     now.UTC(),
		isConstructed: true,
	}, nil
}

// RestoreEntry rebuilds an entry from persistence. The stored margin is kept as is;
// a settled entry must carry its batch id.
func RestoreEntry(
	id, orderID kernel.ID,
	cost, sale kernel.Money,
	margin decimal.Decimal,
	settled bool,
	batchID *kernel.ID,
	createdAt time.Time,
) (*Entry, error) {
	var batchErr error
	switch {
	case settled && batchID == nil:
		batchErr = errs.NewValueIsRequiredErrorWithCause("batch_id", errors.New("settled entry without batch"))
	case !settled && batchID != nil:
		batchErr = errs.NewValueIsInvalidErrorWithCause("batch_id", errors.New("unsettled entry references a batch"))
	case batchID != nil:
		batchErr = batchID.Validate()
	}

	if err := errors.Join(id.Validate(), requireOrderID(orderID), batchErr); err != nil {
		return nil, err
	}

	e := &Entry{
		id:            id,
		orderID:       orderID,
		cost:          cost,
		sale:          sale,
		margin:        margin,
		settled:       settled,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}
	if batchID != nil {
		b := *batchID
		e.batchID = &b
	}
	return e, nil
}

func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

func (e *Entry) ID() kernel.ID           { return e.id }
func (e *Entry) OrderID() kernel.ID      { return e.orderID }
func (e *Entry) Cost() kernel.Money      { return e.cost }
func (e *Entry) Sale() kernel.Money      { return e.sale }
func (e *Entry) Margin() decimal.Decimal { return e.margin }
func (e *Entry) IsSettled() bool         { return e.settled }
func (e *Entry) CreatedAt() time.Time    { return e.createdAt }

// BatchID returns the settling batch, if any.
func (e *Entry) BatchID() (kernel.ID, bool) {
	if e.batchID == nil {
		return kernel.ID{}, false
	}
	return *e.batchID, true
}

// IsConsistent reports whether the stored margin still equals sale - cost.
func (e *Entry) IsConsistent() bool {
	return e.margin.Equal(e.sale.Sub(e.cost))
}

// Settle marks the entry as paid by the given batch.
//
// Returns ErrEntryIsAlreadySettled wrapped in *errs.ValueIsInvalidError when the entry
// was settled before; the entry is left untouched in that case.
func (e *Entry) Settle(batchID kernel.ID) error {
	if e.settled {
		return errs.NewValueIsInvalidErrorWithCause("finance_entry",
			fmt.Errorf("%w: entry %s belongs to batch %s", ErrEntryIsAlreadySettled, e.id, e.batchID))
	}
	if err := batchID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("batch_id", err)
	}

	e.settled = true
	e.batchID = &batchID
	return nil
}

// Snapshot is the serialized view of an entry used in audit records.
type Snapshot struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"order_id"`
	Cost      string    `json:"cost"`
	Sale      string    `json:"sale"`
	Margin    string    `json:"margin"`
	Settled   bool      `json:"settled"`
	BatchID   *int64    `json:"batch_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (e *Entry) Snapshot() Snapshot {
	s := Snapshot{
		ID:        e.id.Int64(),
		OrderID:   e.orderID.Int64(),
		Cost:      e.cost.String(),
		Sale:      e.sale.String(),
		Margin:    e.margin.StringFixed(2),
		Settled:   e.settled,
		CreatedAt: e.createdAt,
	}
	if e.batchID != nil {
		b := e.batchID.Int64()
		s.BatchID = &b
	}
	return s
}

func requireOrderID(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order_id", err)
	}
	return nil
}
