package commands

import (
	"context"
	"time"

	"textile/internal/core/domain/model/audit"
	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles order intake.
// The selection is checked against the stored catalog and the client must exist.
// The order starts in CREATED and a CREATE audit entry carries its snapshot.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command and returns the new order id.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.ID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.ID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.ID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	catalog, err := uow.CatalogRepository().Load(ctx)
	if err != nil {
		return kernel.ID{}, err
	}

	sel := cmd.Selection()
	notes := cmd.Details().Notes
	if err = catalog.ValidateSelection(sel.Category, sel.Type, sel.Product); err != nil {
		return kernel.ID{}, err
	}
	if err = catalog.ValidateAttributes(notes.Fabric, notes.Color, notes.Finish); err != nil {
		return kernel.ID{}, err
	}

	if _, err = uow.ClientRepository().Get(ctx, cmd.ClientID()); err != nil {
		return kernel.ID{}, err
	}

	orderRepo := uow.OrderRepository()
	id, err := orderRepo.NextID(ctx)
	if err != nil {
		return kernel.ID{}, err
	}

	now := time.Now()
	o, err := order.NewOrder(id, cmd.ClientID(), sel, cmd.PriceCost(), cmd.PriceSale(), cmd.Details(), now)
	if err != nil {
		return kernel.ID{}, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return kernel.ID{}, err
	}

	if err = appendAudit(ctx, uow.AuditLog(), now, audit.Record{
		Entity:   audit.EntityOrder,
		EntityID: id.String(),
		Action:   audit.ActionCreate,
		After:    o.Snapshot(),
		Actor:    cmd.Actor(),
	}); err != nil {
		return kernel.ID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.ID{}, err
	}

	return id, nil
}
