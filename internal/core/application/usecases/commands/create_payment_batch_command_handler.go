package commands

import (
	"context"
	"time"

	"textile/internal/core/domain/model/audit"
	"textile/internal/core/domain/model/finance"
	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/services"
)

// CreatePaymentBatchCommandHandler pays suppliers for a selection of delivered orders.
//
// Settlement is strict: if any selected order has no unsettled entry, nothing is
// written. The selected entries are locked without waiting, so two concurrent
// batches over the same order cannot both succeed.
type CreatePaymentBatchCommandHandler struct {
	uowFactory SettlementUoWFactory
	settlement services.Settlement
}

func NewCreatePaymentBatchCommandHandler(
	uowFactory SettlementUoWFactory,
	settlement services.Settlement,
) CreatePaymentBatchCommandHandler {
	return CreatePaymentBatchCommandHandler{
		uowFactory: uowFactory,
		settlement: settlement,
	}
}

// Handle returns the created batch.
func (h CreatePaymentBatchCommandHandler) Handle(
	ctx context.Context,
	cmd CreatePaymentBatchCommand,
) (*finance.PaymentBatch, error) {
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

	entryRepo := uow.FinanceEntryRepository()
	batchRepo := uow.PaymentBatchRepository()

	entries, err := entryRepo.GetUnsettledForUpdate(ctx, cmd.OrderIDs())
	if err != nil {
		return nil, err
	}

	batchID, err := batchRepo.NextID(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	batch, err := h.settlement.Settle(batchID, cmd.OrderIDs(), entries, now)
	if err != nil {
		return nil, err
	}

	if err = batchRepo.Add(ctx, batch); err != nil {
		return nil, err
	}

	records := []audit.Record{{
		Entity:   audit.EntityPaymentBatch,
		EntityID: batch.ID().String(),
		Action:   audit.ActionCreate,
		After:    batch.Snapshot(),
		Actor:    cmd.Actor(),
	}}

	for _, entry := range entries {
		if err = entryRepo.Settle(ctx, entry); err != nil {
			return nil, err
		}
		records = append(records, settleRecord(entry, batchID, cmd.Actor()))
	}

	if err = appendAudit(ctx, uow.AuditLog(), now, records...); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return batch, nil
}

func settleRecord(entry *finance.Entry, batchID kernel.ID, actor string) audit.Record {
	return audit.Record{
		Entity:   audit.EntityFinanceEntry,
		EntityID: entry.ID().String(),
		Action:   audit.ActionSettle,
		Field:    "batch_id",
		After:    batchID.Int64(),
		Actor:    actor,
	}
}
