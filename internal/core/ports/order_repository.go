// Package ports defines the contracts between the core and its infrastructure:
// repositories bound to a unit of work, and the external collaborators the core
// consumes (photo storage and shipment document generation).
package ports

import (
	"context"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// NextID reserves an identifier from the orders sequence.
	NextID(ctx context.Context) (kernel.ID, error)

	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order.
	// The write only succeeds if the stored version still equals aggregate.Version();
	// otherwise it returns *errs.ConcurrencyConflictError.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by identifier.
	// Returns *errs.ObjectNotFoundError when it does not exist.
	Get(ctx context.Context, id kernel.ID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the transaction ends.
	// The lock is not waited for: if another transaction holds it, the call fails
	// with *errs.ConcurrencyConflictError.
	//
	// Example:
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, id)
	//   if errors.Is(err, errs.ErrConcurrencyConflict) {
	//       // another operator is moving this order, ask the caller to retry
	//   }
	GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error)

	// Delete removes the order row. Dependent rows must be removed first.
	Delete(ctx context.Context, id kernel.ID) error
}

// ShipmentRepository stores shipment records produced when an order is sent to the supplier.
type ShipmentRepository interface {
	NextID(ctx context.Context) (kernel.ID, error)
	Add(ctx context.Context, shipment *order.Shipment) error
	ListByOrder(ctx context.Context, orderID kernel.ID) ([]*order.Shipment, error)
	DeleteByOrder(ctx context.Context, orderID kernel.ID) error
}

// NonConformityRepository stores rejected-delivery reports.
type NonConformityRepository interface {
	NextID(ctx context.Context) (kernel.ID, error)
	Add(ctx context.Context, nc *order.NonConformity) error
	ListByOrder(ctx context.Context, orderID kernel.ID) ([]*order.NonConformity, error)
	DeleteByOrder(ctx context.Context, orderID kernel.ID) error
}
