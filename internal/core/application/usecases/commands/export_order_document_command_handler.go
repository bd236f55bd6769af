package commands

import (
	"context"
	"time"

	"textile/internal/core/domain/model/audit"
	"textile/internal/core/ports"
)

// FieldDocument is the audit field of document exports.
const FieldDocument = "document"

// ExportOrderDocumentCommandHandler renders the order document on demand and
// records the export. The order itself is not changed.
type ExportOrderDocumentCommandHandler struct {
	uowFactory OrderUoWFactory
	documents  ports.DocumentGenerator
}

func NewExportOrderDocumentCommandHandler(
	uowFactory OrderUoWFactory,
	documents ports.DocumentGenerator,
) ExportOrderDocumentCommandHandler {
	return ExportOrderDocumentCommandHandler{
		uowFactory: uowFactory,
		documents:  documents,
	}
}

// Handle returns the reference of the generated document.
func (h ExportOrderDocumentCommandHandler) Handle(ctx context.Context, cmd ExportOrderDocumentCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return "", err
	}

	ref, err := h.documents.Generate(ctx, o.Snapshot())
	if err != nil {
		return "", err
	}

	if err = appendAudit(ctx, uow.AuditLog(), time.Now(), audit.Record{
		Entity:   audit.EntityOrder,
		EntityID: o.ID().String(),
		Action:   audit.ActionExportPDF,
		Field:    FieldDocument,
		After:    ref,
		Actor:    cmd.Actor(),
	}); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return ref, nil
}
