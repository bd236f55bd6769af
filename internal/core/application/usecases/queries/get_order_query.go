package queries

import (
	"errors"
	"time"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/order"
	"textile/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order with its shipments and nonconformities.
type GetOrderQuery struct {
	orderID kernel.ID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.ID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.ID { return q.orderID }

// OrderDetails is the full read model of an order.
type OrderDetails struct {
	OrderSummary
	Notes           order.StructuredNotes
	FreeNotes       string
	Photos          order.Photos
	Version         int
	Shipments       []ShipmentView
	NonConformities []NonConformityView
}

type ShipmentView struct {
	ID          kernel.ID
	Medium      string
	SentAt      time.Time
	DocumentRef string
}

type NonConformityView struct {
	ID          kernel.ID
	Kind        order.NonConformityKind
	Description string
	Photos      order.Photos
	Count       int
	CreatedAt   time.Time
}
