package http

import (
	"context"
	"log/slog"
	"net/http"

	"textile/internal/core/application/usecases/commands"
	"textile/internal/core/application/usecases/queries"
	"textile/internal/core/domain/model/audit"
	"textile/internal/core/domain/model/catalog"
	"textile/internal/core/domain/model/finance"
	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/order"
	"textile/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

type CreateClientHandler interface {
	Handle(ctx context.Context, cmd commands.CreateClientCommand) (kernel.ID, error)
}

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (kernel.ID, error)
}

type EditOrderHandler interface {
	Handle(ctx context.Context, cmd commands.EditOrderCommand) (*order.Order, error)
}

type DeleteOrderHandler interface {
	Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error
}

type TransitionOrderHandler interface {
	Handle(ctx context.Context, cmd commands.TransitionOrderCommand) (*order.Order, error)
}

type ExportOrderDocumentHandler interface {
	Handle(ctx context.Context, cmd commands.ExportOrderDocumentCommand) (string, error)
}

type CreatePaymentBatchHandler interface {
	Handle(ctx context.Context, cmd commands.CreatePaymentBatchCommand) (*finance.PaymentBatch, error)
}

type UpdateCatalogHandler interface {
	Handle(ctx context.Context, cmd commands.UpdateCatalogCommand) ([]string, error)
}

type UploadPhotoHandler interface {
	Handle(ctx context.Context, cmd commands.UploadPhotoCommand) (string, error)
}

type CleanOrphanedObjectsHandler interface {
	Handle(ctx context.Context, cmd commands.CleanOrphanedObjectsCommand) (commands.OrphanReport, error)
}

type GetCatalogHandler interface {
	Handle(ctx context.Context, query queries.GetCatalogQuery) (*catalog.Catalog, error)
}

type ListOrdersHandler interface {
	Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderSummary, error)
}

type GetOrderHandler interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderDetails, error)
}

type ListUnsettledEntriesHandler interface {
	Handle(ctx context.Context, query queries.ListUnsettledEntriesQuery) ([]queries.UnsettledEntry, error)
}

type ListAuditEntriesHandler interface {
	Handle(ctx context.Context, query queries.ListAuditEntriesQuery) ([]*audit.Entry, error)
}

type VerifyLedgerHandler interface {
	Handle(ctx context.Context, query queries.VerifyLedgerQuery) (queries.LedgerReport, error)
}

type GetStatisticsHandler interface {
	Handle(ctx context.Context, query queries.GetStatisticsQuery) (queries.Statistics, error)
}

// Commands groups the command handlers the server dispatches to.
type Commands struct {
	CreateClient        CreateClientHandler
	CreateOrder         CreateOrderHandler
	EditOrder           EditOrderHandler
	DeleteOrder         DeleteOrderHandler
	TransitionOrder     TransitionOrderHandler
	ExportOrderDocument ExportOrderDocumentHandler
	CreatePaymentBatch  CreatePaymentBatchHandler
	UpdateCatalog       UpdateCatalogHandler
	UploadPhoto         UploadPhotoHandler

	CleanOrphanedObjects CleanOrphanedObjectsHandler
}

// Queries groups the read-side handlers.
type Queries struct {
	GetCatalog           GetCatalogHandler
	ListOrders           ListOrdersHandler
	GetOrder             GetOrderHandler
	ListUnsettledEntries ListUnsettledEntriesHandler
	ListAuditEntries     ListAuditEntriesHandler
	VerifyLedger         VerifyLedgerHandler
	GetStatistics        GetStatisticsHandler
}

// Server implements servers.ServerInterface. It translates HTTP requests into
// commands and queries and maps results and errors back onto the API models.
type Server struct {
	commands Commands
	queries  Queries
	logger   *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(commands Commands, queries Queries, logger *slog.Logger) *Server {
	return &Server{
		commands: commands,
		queries:  queries,
		logger:   logger.With("component", "http_server"),
	}
}

// GetHealth handles GET /api/v1/health.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, servers.Health{Status: "Healthy"})
}
