package commands

import (
	"context"
	"errors"
	"time"

	"textile/internal/core/domain/model/audit"
	"textile/internal/pkg/errs"
)

// ErrOrderHasFinanceEntry is returned when deleting an order that reached delivery.
// Finance entries are never removed, so neither is their order.
var ErrOrderHasFinanceEntry = errors.New("order has a finance entry and cannot be deleted")

// FieldAll marks audit entries that capture a whole aggregate.
const FieldAll = "all"

// DeleteOrderCommandHandler removes an order together with its shipments and
// nonconformities. The DELETE audit entry keeps the full snapshot.
type DeleteOrderCommandHandler struct {
	uowFactory LifecycleUoWFactory
}

func NewDeleteOrderCommandHandler(uowFactory LifecycleUoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{uowFactory: uowFactory}
}

func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	hasEntry, err := uow.FinanceEntryRepository().ExistsForOrder(ctx, o.ID())
	if err != nil {
		return err
	}
	if hasEntry {
		return errs.NewValueIsInvalidErrorWithCause("order_id", ErrOrderHasFinanceEntry)
	}

	shipmentRepo := uow.ShipmentRepository()
	ncRepo := uow.NonConformityRepository()

	shipments, err := shipmentRepo.ListByOrder(ctx, o.ID())
	if err != nil {
		return err
	}
	ncs, err := ncRepo.ListByOrder(ctx, o.ID())
	if err != nil {
		return err
	}

	snapshot := o.Snapshot()
	for _, s := range shipments {
		snapshot.Shipments = append(snapshot.Shipments, s.Snapshot())
	}
	for _, nc := range ncs {
		snapshot.NonConformities = append(snapshot.NonConformities, nc.Snapshot())
	}

	if err = appendAudit(ctx, uow.AuditLog(), time.Now(), audit.Record{
		Entity:   audit.EntityOrder,
		EntityID: o.ID().String(),
		Action:   audit.ActionDelete,
		Field:    FieldAll,
		Before:   snapshot,
		Actor:    cmd.Actor(),
	}); err != nil {
		return err
	}

	if err = ncRepo.DeleteByOrder(ctx, o.ID()); err != nil {
		return err
	}
	if err = shipmentRepo.DeleteByOrder(ctx, o.ID()); err != nil {
		return err
	}
	if err = orderRepo.Delete(ctx, o.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
