package cmd

import (
	"log/slog"

	httpin "textile/internal/adapters/in/http"
	"textile/internal/adapters/out/objectstore"
	"textile/internal/adapters/out/postgres"
	"textile/internal/core/application/usecases/commands"
	"textile/internal/core/application/usecases/queries"
	"textile/internal/core/domain/model/order"
	"textile/internal/core/domain/services"
	"textile/internal/core/ports"
	"textile/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	table      *order.TransitionTable
	photos     ports.PhotoStore
	documents  ports.DocumentGenerator
	objects    ports.ObjectInventory
	logger     *slog.Logger
}

func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	table *order.TransitionTable,
	store *objectstore.Store,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		table:      table,
		photos:     objectstore.NewPhotoStore(store),
		documents:  objectstore.NewDocumentGenerator(store),
		objects:    objectstore.NewInventory(store),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateClientCommandHandler() commands.CreateClientCommandHandler {
	var f commands.ClientUoWFactory = FuncClientUoWFactory(func() commands.ClientUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateClientCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	handler := commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
	return &handler
}

func (c *CompositionRoot) CreateEditOrderCommandHandler() commands.EditOrderCommandHandler {
	return commands.NewEditOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateExportOrderDocumentCommandHandler() commands.ExportOrderDocumentCommandHandler {
	return commands.NewExportOrderDocumentCommandHandler(c.orderUoWFactory(), c.documents)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.lifecycleUoWFactory(), c.table, c.documents)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.lifecycleUoWFactory())
}

func (c *CompositionRoot) CreateCreatePaymentBatchCommandHandler() commands.CreatePaymentBatchCommandHandler {
	var f commands.SettlementUoWFactory = FuncSettlementUoWFactory(func() commands.SettlementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreatePaymentBatchCommandHandler(f, services.NewSettlement())
}

func (c *CompositionRoot) CreateUpdateCatalogCommandHandler() commands.UpdateCatalogCommandHandler {
	var f commands.CatalogUoWFactory = FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateCatalogCommandHandler(f)
}

func (c *CompositionRoot) CreateUploadPhotoCommandHandler() commands.UploadPhotoCommandHandler {
	return commands.NewUploadPhotoCommandHandler(c.photos)
}

func (c *CompositionRoot) CreateCleanOrphanedObjectsCommandHandler() commands.CleanOrphanedObjectsCommandHandler {
	var f commands.MaintenanceUoWFactory = FuncMaintenanceUoWFactory(func() commands.MaintenanceUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCleanOrphanedObjectsCommandHandler(f, c.objects)
}

func (c *CompositionRoot) CreateGetCatalogQueryHandler() queries.GetCatalogQueryHandler {
	return queries.NewGetCatalogQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListUnsettledEntriesQueryHandler() queries.ListUnsettledEntriesQueryHandler {
	return queries.NewListUnsettledEntriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListAuditEntriesQueryHandler() queries.ListAuditEntriesQueryHandler {
	return queries.NewListAuditEntriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateVerifyLedgerQueryHandler() queries.VerifyLedgerQueryHandler {
	return queries.NewVerifyLedgerQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStatisticsQueryHandler() queries.GetStatisticsQueryHandler {
	return queries.NewGetStatisticsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		httpin.Commands{
			CreateClient:        c.CreateCreateClientCommandHandler(),
			CreateOrder:         c.CreateCreateOrderCommandHandler(),
			EditOrder:           c.CreateEditOrderCommandHandler(),
			DeleteOrder:         c.CreateDeleteOrderCommandHandler(),
			TransitionOrder:     c.CreateTransitionOrderCommandHandler(),
			ExportOrderDocument: c.CreateExportOrderDocumentCommandHandler(),
			CreatePaymentBatch:  c.CreateCreatePaymentBatchCommandHandler(),
			UpdateCatalog:       c.CreateUpdateCatalogCommandHandler(),
			UploadPhoto:         c.CreateUploadPhotoCommandHandler(),

			CleanOrphanedObjects: c.CreateCleanOrphanedObjectsCommandHandler(),
		},
		httpin.Queries{
			GetCatalog:           c.CreateGetCatalogQueryHandler(),
			ListOrders:           c.CreateListOrdersQueryHandler(),
			GetOrder:             c.CreateGetOrderQueryHandler(),
			ListUnsettledEntries: c.CreateListUnsettledEntriesQueryHandler(),
			ListAuditEntries:     c.CreateListAuditEntriesQueryHandler(),
			VerifyLedger:         c.CreateVerifyLedgerQueryHandler(),
			GetStatistics:        c.CreateGetStatisticsQueryHandler(),
		},
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateVerifyLedgerQueryHandler(), c.configs.LedgerIntegritySchedule, c.logger)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) lifecycleUoWFactory() commands.LifecycleUoWFactory {
	return FuncLifecycleUoWFactory(func() commands.LifecycleUoW {
		return c.uowFactory.Create()
	})
}

type FuncClientUoWFactory func() commands.ClientUoW

func (f FuncClientUoWFactory) Create() commands.ClientUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncLifecycleUoWFactory func() commands.LifecycleUoW

func (f FuncLifecycleUoWFactory) Create() commands.LifecycleUoW {
	return f()
}

type FuncSettlementUoWFactory func() commands.SettlementUoW

func (f FuncSettlementUoWFactory) Create() commands.SettlementUoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}

type FuncMaintenanceUoWFactory func() commands.MaintenanceUoW

func (f FuncMaintenanceUoWFactory) Create() commands.MaintenanceUoW {
	return f()
}
