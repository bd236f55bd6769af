package queries

import (
	"errors"
	"time"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/order"
	"textile/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists orders, newest first by id. A query built without a
// status lists every order.
//
// Example:
//
//	query, err := NewListOrdersQuery(&inStock)
//	orders, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	status *order.Status

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(status *order.Status) (ListOrdersQuery, error) {
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
		s := *status
		status = &s
	}
	return ListOrdersQuery{status: status, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Status returns the filter, if any.
func (q ListOrdersQuery) Status() (order.Status, bool) {
	if q.status == nil {
		return order.Unknown, false
	}
	return *q.status, true
}

// OrderSummary is one row of an order listing.
type OrderSummary struct {
	ID         kernel.ID
	ClientID   kernel.ID
	ClientName string
	Selection  order.Selection
	PriceCost  kernel.Money
	PriceSale  kernel.Money
	Status     order.Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
