package queries

import (
	"errors"
	"fmt"
	"time"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/order"
	"textile/internal/pkg/errs"
	"textile/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListUnsettledEntriesQueryIsNotConstructed = errors.New(
	"ListUnsettledEntriesQuery must be created via NewListUnsettledEntriesQuery constructor",
)

// ListUnsettledEntriesQuery lists the finance entries not yet in a payment batch.
// From is inclusive and To is exclusive; either may be nil.
type ListUnsettledEntriesQuery struct {
	from *time.Time
	to   *time.Time

	guard guard.ConstructorGuard
}

func NewListUnsettledEntriesQuery(from, to *time.Time) (ListUnsettledEntriesQuery, error) {
	if from != nil && to != nil && !from.Before(*to) {
		return ListUnsettledEntriesQuery{}, errs.NewValueIsInvalidErrorWithCause("to",
			fmt.Errorf("%s is not after from %s", to.Format(time.RFC3339), from.Format(time.RFC3339)))
	}
	return ListUnsettledEntriesQuery{
		from:  utcOrNil(from),
		to:    utcOrNil(to),
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q ListUnsettledEntriesQuery) Validate() error {
	return q.guard.Validate(ErrListUnsettledEntriesQueryIsNotConstructed)
}

func (q ListUnsettledEntriesQuery) From() *time.Time { return q.from }
func (q ListUnsettledEntriesQuery) To() *time.Time   { return q.to }

// UnsettledEntry is a finance entry with the order and client fields shown next
// to it when picking orders to settle.
type UnsettledEntry struct {
	EntryID    kernel.ID
	OrderID    kernel.ID
	Cost       kernel.Money
	Sale       kernel.Money
	Margin     decimal.Decimal
	CreatedAt  time.Time
	Selection  order.Selection
	ClientID   kernel.ID
	ClientName string
}

func utcOrNil(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
