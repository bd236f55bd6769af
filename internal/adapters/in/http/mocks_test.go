package http_test

import (
	"context"

	"textile/internal/core/application/usecases/commands"
	"textile/internal/core/application/usecases/queries"
	"textile/internal/core/domain/model/audit"
	"textile/internal/core/domain/model/catalog"
	"textile/internal/core/domain/model/finance"
	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

type MockCreateClientHandler struct{ mock.Mock }

func (m *MockCreateClientHandler) Handle(ctx context.Context, cmd commands.CreateClientCommand) (kernel.ID, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(kernel.ID), args.Error(1)
}

type MockCreateOrderHandler struct{ mock.Mock }

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (kernel.ID, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(kernel.ID), args.Error(1)
}

type MockEditOrderHandler struct{ mock.Mock }

func (m *MockEditOrderHandler) Handle(ctx context.Context, cmd commands.EditOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockDeleteOrderHandler struct{ mock.Mock }

func (m *MockDeleteOrderHandler) Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockTransitionOrderHandler struct{ mock.Mock }

func (m *MockTransitionOrderHandler) Handle(ctx context.Context, cmd commands.TransitionOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockExportOrderDocumentHandler struct{ mock.Mock }

func (m *MockExportOrderDocumentHandler) Handle(ctx context.Context, cmd commands.ExportOrderDocumentCommand) (string, error) {
	args := m.Called(ctx, cmd)
	return args.String(0), args.Error(1)
}

type MockCreatePaymentBatchHandler struct{ mock.Mock }

func (m *MockCreatePaymentBatchHandler) Handle(
	ctx context.Context,
	cmd commands.CreatePaymentBatchCommand,
) (*finance.PaymentBatch, error) {
	args := m.Called(ctx, cmd)
	b, _ := args.Get(0).(*finance.PaymentBatch)
	return b, args.Error(1)
}

type MockUpdateCatalogHandler struct{ mock.Mock }

func (m *MockUpdateCatalogHandler) Handle(ctx context.Context, cmd commands.UpdateCatalogCommand) ([]string, error) {
	args := m.Called(ctx, cmd)
	changed, _ := args.Get(0).([]string)
	return changed, args.Error(1)
}

type MockUploadPhotoHandler struct{ mock.Mock }

func (m *MockUploadPhotoHandler) Handle(ctx context.Context, cmd commands.UploadPhotoCommand) (string, error) {
	args := m.Called(ctx, cmd)
	return args.String(0), args.Error(1)
}

type MockGetCatalogHandler struct{ mock.Mock }

func (m *MockGetCatalogHandler) Handle(ctx context.Context, query queries.GetCatalogQuery) (*catalog.Catalog, error) {
	args := m.Called(ctx, query)
	c, _ := args.Get(0).(*catalog.Catalog)
	return c, args.Error(1)
}

type MockListOrdersHandler struct{ mock.Mock }

func (m *MockListOrdersHandler) Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderSummary, error) {
	args := m.Called(ctx, query)
	orders, _ := args.Get(0).([]queries.OrderSummary)
	return orders, args.Error(1)
}

type MockGetOrderHandler struct{ mock.Mock }

func (m *MockGetOrderHandler) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderDetails, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.OrderDetails), args.Error(1)
}

type MockListUnsettledEntriesHandler struct{ mock.Mock }

func (m *MockListUnsettledEntriesHandler) Handle(
	ctx context.Context,
	query queries.ListUnsettledEntriesQuery,
) ([]queries.UnsettledEntry, error) {
	args := m.Called(ctx, query)
	entries, _ := args.Get(0).([]queries.UnsettledEntry)
	return entries, args.Error(1)
}

type MockListAuditEntriesHandler struct{ mock.Mock }

func (m *MockListAuditEntriesHandler) Handle(ctx context.Context, query queries.ListAuditEntriesQuery) ([]*audit.Entry, error) {
	args := m.Called(ctx, query)
	entries, _ := args.Get(0).([]*audit.Entry)
	return entries, args.Error(1)
}

type MockVerifyLedgerHandler struct{ mock.Mock }

func (m *MockVerifyLedgerHandler) Handle(ctx context.Context, query queries.VerifyLedgerQuery) (queries.LedgerReport, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.LedgerReport), args.Error(1)
}

type MockGetStatisticsHandler struct{ mock.Mock }

func (m *MockGetStatisticsHandler) Handle(ctx context.Context, query queries.GetStatisticsQuery) (queries.Statistics, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.Statistics), args.Error(1)
}

type MockCleanOrphanedObjectsHandler struct{ mock.Mock }

func (m *MockCleanOrphanedObjectsHandler) Handle(
	ctx context.Context,
	cmd commands.CleanOrphanedObjectsCommand,
) (commands.OrphanReport, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.OrphanReport), args.Error(1)
}
