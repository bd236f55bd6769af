package http

import (
	"net/http"

	"textile/internal/core/application/usecases/commands"
	"textile/internal/core/application/usecases/queries"
	"textile/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// ListUnsettledEntries handles GET /api/v1/finance/entries.
func (s *Server) ListUnsettledEntries(ctx echo.Context, params servers.ListUnsettledEntriesParams) error {
	query, err := queries.NewListUnsettledEntriesQuery(params.From, params.To)
	if err != nil {
		return s.fail(ctx, err)
	}

	entries, err := s.queries.ListUnsettledEntries.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.UnsettledEntry, len(entries))
	for i, e := range entries {
		response[i] = toUnsettledEntry(e)
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreatePaymentBatch handles POST /api/v1/finance/batches.
func (s *Server) CreatePaymentBatch(ctx echo.Context) error {
	var body servers.NewPaymentBatch
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderIDs, err := parseIDs("order_ids", body.OrderIds)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreatePaymentBatchCommand(orderIDs, actorFrom(ctx))
	if err != nil {
		return s.fail(ctx, err)
	}

	batch, err := s.commands.CreatePaymentBatch.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.PaymentBatch{
		Id:        batch.ID().Int64(),
		Total:     batch.Total().String(),
		CreatedAt: batch.CreatedAt(),
	})
}

// VerifyLedger handles GET /api/v1/finance/integrity.
func (s *Server) VerifyLedger(ctx echo.Context) error {
	report, err := s.queries.VerifyLedger.Handle(ctx.Request().Context(), queries.NewVerifyLedgerQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toLedgerReport(report))
}

// ListAuditEntries handles GET /api/v1/audit.
func (s *Server) ListAuditEntries(ctx echo.Context, params servers.ListAuditEntriesParams) error {
	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}

	query, err := queries.NewListAuditEntriesQuery(limit)
	if err != nil {
		return s.fail(ctx, err)
	}

	entries, err := s.queries.ListAuditEntries.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.AuditEntry, len(entries))
	for i, e := range entries {
		response[i] = toAuditEntry(e)
	}

	return ctx.JSON(http.StatusOK, response)
}
