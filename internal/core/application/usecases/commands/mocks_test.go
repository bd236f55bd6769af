package commands_test

import (
	"context"

	"textile/internal/core/application/usecases/commands"
	"textile/internal/core/domain/model/audit"
	"textile/internal/core/domain/model/catalog"
	"textile/internal/core/domain/model/client"
	"textile/internal/core/domain/model/finance"
	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/order"
	"textile/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) NextID(ctx context.Context) (kernel.ID, error) {
	args := m.Called(ctx)
	return args.Get(0).(kernel.ID), args.Error(1)
}

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) NextID(ctx context.Context) (kernel.ID, error) {
	args := m.Called(ctx)
	return args.Get(0).(kernel.ID), args.Error(1)
}

func (m *MockShipmentRepository) Add(ctx context.Context, s *order.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) ListByOrder(ctx context.Context, orderID kernel.ID) ([]*order.Shipment, error) {
	args := m.Called(ctx, orderID)
	s, _ := args.Get(0).([]*order.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentRepository) DeleteByOrder(ctx context.Context, orderID kernel.ID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type MockNonConformityRepository struct{ mock.Mock }

func (m *MockNonConformityRepository) NextID(ctx context.Context) (kernel.ID, error) {
	args := m.Called(ctx)
	return args.Get(0).(kernel.ID), args.Error(1)
}

func (m *MockNonConformityRepository) Add(ctx context.Context, nc *order.NonConformity) error {
	args := m.Called(ctx, nc)
	return args.Error(0)
}

func (m *MockNonConformityRepository) ListByOrder(
	ctx context.Context,
	orderID kernel.ID,
) ([]*order.NonConformity, error) {
	args := m.Called(ctx, orderID)
	ncs, _ := args.Get(0).([]*order.NonConformity)
	return ncs, args.Error(1)
}

func (m *MockNonConformityRepository) DeleteByOrder(ctx context.Context, orderID kernel.ID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type MockFinanceEntryRepository struct{ mock.Mock }

func (m *MockFinanceEntryRepository) NextID(ctx context.Context) (kernel.ID, error) {
	args := m.Called(ctx)
	return args.Get(0).(kernel.ID), args.Error(1)
}

func (m *MockFinanceEntryRepository) Add(ctx context.Context, e *finance.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockFinanceEntryRepository) ExistsForOrder(ctx context.Context, orderID kernel.ID) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFinanceEntryRepository) GetUnsettledForUpdate(
	ctx context.Context,
	orderIDs []kernel.ID,
) ([]*finance.Entry, error) {
	args := m.Called(ctx, orderIDs)
	entries, _ := args.Get(0).([]*finance.Entry)
	return entries, args.Error(1)
}

func (m *MockFinanceEntryRepository) Settle(ctx context.Context, e *finance.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

type MockPaymentBatchRepository struct{ mock.Mock }

func (m *MockPaymentBatchRepository) NextID(ctx context.Context) (kernel.ID, error) {
	args := m.Called(ctx)
	return args.Get(0).(kernel.ID), args.Error(1)
}

func (m *MockPaymentBatchRepository) Add(ctx context.Context, b *finance.PaymentBatch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockPaymentBatchRepository) Get(ctx context.Context, id kernel.ID) (*finance.PaymentBatch, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*finance.PaymentBatch)
	return b, args.Error(1)
}

type MockClientRepository struct{ mock.Mock }

func (m *MockClientRepository) NextID(ctx context.Context) (kernel.ID, error) {
	args := m.Called(ctx)
	return args.Get(0).(kernel.ID), args.Error(1)
}

func (m *MockClientRepository) Add(ctx context.Context, c *client.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClientRepository) Get(ctx context.Context, id kernel.ID) (*client.Client, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*client.Client)
	return c, args.Error(1)
}

type MockCatalogRepository struct{ mock.Mock }

func (m *MockCatalogRepository) Load(ctx context.Context) (*catalog.Catalog, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).(*catalog.Catalog)
	return c, args.Error(1)
}

func (m *MockCatalogRepository) Save(ctx context.Context, c *catalog.Catalog) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

type MockAuditLog struct{ mock.Mock }

func (m *MockAuditLog) Append(ctx context.Context, e *audit.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

type MockObjectReferences struct{ mock.Mock }

func (m *MockObjectReferences) Referenced(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	refs, _ := args.Get(0).([]string)
	return refs, args.Error(1)
}

type MockObjectInventory struct{ mock.Mock }

func (m *MockObjectInventory) List(ctx context.Context) ([]ports.StoredObject, error) {
	args := m.Called(ctx)
	objects, _ := args.Get(0).([]ports.StoredObject)
	return objects, args.Error(1)
}

func (m *MockObjectInventory) Remove(ctx context.Context, refs []string) error {
	return m.Called(ctx, refs).Error(0)
}

type MockDocumentGenerator struct{ mock.Mock }

func (m *MockDocumentGenerator) Generate(ctx context.Context, snapshot order.Snapshot) (string, error) {
	args := m.Called(ctx, snapshot)
	return args.String(0), args.Error(1)
}

// MockUoW satisfies every unit of work interface of the commands package.
// Repository getters return whatever was registered on the struct fields.
type MockUoW struct {
	mock.Mock

	orders         *MockOrderRepository
	shipments      *MockShipmentRepository
	nonConformity  *MockNonConformityRepository
	financeEntries *MockFinanceEntryRepository
	batches        *MockPaymentBatchRepository
	clients        *MockClientRepository
	catalog        *MockCatalogRepository
	references     *MockObjectReferences
	audit          *MockAuditLog
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		orders:         new(MockOrderRepository),
		shipments:      new(MockShipmentRepository),
		nonConformity:  new(MockNonConformityRepository),
		financeEntries: new(MockFinanceEntryRepository),
		batches:        new(MockPaymentBatchRepository),
		clients:        new(MockClientRepository),
		catalog:        new(MockCatalogRepository),
		references:     new(MockObjectReferences),
		audit:          new(MockAuditLog),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository                 { return m.orders }
func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository           { return m.shipments }
func (m *MockUoW) NonConformityRepository() ports.NonConformityRepository { return m.nonConformity }
func (m *MockUoW) FinanceEntryRepository() ports.FinanceEntryRepository   { return m.financeEntries }
func (m *MockUoW) PaymentBatchRepository() ports.PaymentBatchRepository   { return m.batches }
func (m *MockUoW) ClientRepository() ports.ClientRepository               { return m.clients }
func (m *MockUoW) CatalogRepository() ports.CatalogRepository             { return m.catalog }
func (m *MockUoW) ObjectReferences() ports.ObjectReferences               { return m.references }
func (m *MockUoW) AuditLog() ports.AuditLog                               { return m.audit }

// assertAll checks the expectations of the unit of work and every repository.
func (m *MockUoW) assertAll(t mock.TestingT) {
	m.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.shipments.AssertExpectations(t)
	m.nonConformity.AssertExpectations(t)
	m.financeEntries.AssertExpectations(t)
	m.batches.AssertExpectations(t)
	m.clients.AssertExpectations(t)
	m.catalog.AssertExpectations(t)
	m.references.AssertExpectations(t)
	m.audit.AssertExpectations(t)
}

// expectTx registers a transaction that begins, optionally commits, and always rolls back.
func (m *MockUoW) expectTx(ctx context.Context, commits bool) {
	m.On("Begin", ctx).Return(nil).Once()
	if commits {
		m.On("Commit", ctx).Return(nil).Once()
	}
	m.On("Rollback", ctx).Return(nil).Once()
}

type MockFactory struct{ mock.Mock }

func (m *MockFactory) uow() *MockUoW {
	args := m.MethodCalled("Create")
	return args.Get(0).(*MockUoW)
}

type clientFactory struct{ *MockFactory }

func (f clientFactory) Create() commands.ClientUoW { return f.uow() }

type orderFactory struct{ *MockFactory }

func (f orderFactory) Create() commands.OrderUoW { return f.uow() }

type lifecycleFactory struct{ *MockFactory }

func (f lifecycleFactory) Create() commands.LifecycleUoW { return f.uow() }

type settlementFactory struct{ *MockFactory }

func (f settlementFactory) Create() commands.SettlementUoW { return f.uow() }

type catalogFactory struct{ *MockFactory }

func (f catalogFactory) Create() commands.CatalogUoW { return f.uow() }

type maintenanceFactory struct{ *MockFactory }

func (f maintenanceFactory) Create() commands.MaintenanceUoW { return f.uow() }

func newFactory(uow *MockUoW) *MockFactory {
	f := new(MockFactory)
	f.On("Create").Return(uow).Once()
	return f
}

// auditAction matches an audit entry by action and field.
func auditAction(action audit.Action, field string) any {
	return mock.MatchedBy(func(e *audit.Entry) bool {
		return e.Action() == action && e.Field() == field
	})
}
