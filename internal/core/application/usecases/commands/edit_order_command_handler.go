package commands

import (
	"context"
	"time"

	"textile/internal/core/domain/model/audit"
	"textile/internal/core/domain/model/order"
)

// EditOrderCommandHandler applies edits to CREATED orders and writes one UPDATE
// audit entry per field that actually changed.
type EditOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewEditOrderCommandHandler(uowFactory OrderUoWFactory) EditOrderCommandHandler {
	return EditOrderCommandHandler{uowFactory: uowFactory}
}

// Handle returns the order as stored after the edit. When nothing changed the
// order is returned untouched and nothing is written.
func (h EditOrderCommandHandler) Handle(ctx context.Context, cmd EditOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	edit := cmd.Edit()
	if edit.Notes != nil {
		catalog, err := uow.CatalogRepository().Load(ctx)
		if err != nil {
			return nil, err
		}
		if err = catalog.ValidateAttributes(edit.Notes.Fabric, edit.Notes.Color, edit.Notes.Finish); err != nil {
			return nil, err
		}
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	changes, err := o.Edit(edit, now)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return o, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = appendAudit(ctx, uow.AuditLog(), now, changeRecords(o, audit.ActionUpdate, changes, cmd.Actor())...); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func changeRecords(o *order.Order, action audit.Action, changes []order.FieldChange, actor string) []audit.Record {
	records := make([]audit.Record, 0, len(changes))
	for _, c := range changes {
		records = append(records, audit.Record{
			Entity:   audit.EntityOrder,
			EntityID: o.ID().String(),
			Action:   action,
			Field:    c.Field,
			Before:   c.Before,
			After:    c.After,
			Actor:    actor,
		})
	}
	return records
}
