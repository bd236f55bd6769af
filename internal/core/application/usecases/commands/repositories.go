// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
// Every command writes its audit entries in the same transaction as the change.
package commands

import (
	"context"

	"textile/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest set of repositories it needs.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	NonConformityRepoFactory interface {
		NonConformityRepository() ports.NonConformityRepository
	}

	FinanceEntryRepoFactory interface {
		FinanceEntryRepository() ports.FinanceEntryRepository
	}

	PaymentBatchRepoFactory interface {
		PaymentBatchRepository() ports.PaymentBatchRepository
	}

	ClientRepoFactory interface {
		ClientRepository() ports.ClientRepository
	}

	CatalogRepoFactory interface {
		CatalogRepository() ports.CatalogRepository
	}

	ObjectReferencesFactory interface {
		ObjectReferences() ports.ObjectReferences
	}

	// AuditLogFactory provides the audit trail bound to the transaction.
	AuditLogFactory interface {
		AuditLog() ports.AuditLog
	}

	// ClientUoW manages transactions for client registration.
	ClientUoW interface {
		TxManager
		ClientRepoFactory
		AuditLogFactory
	}

	ClientUoWFactory interface {
		Create() ClientUoW
	}

	// OrderUoW manages transactions for order intake and edits, which validate
	// against the client and the catalog.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		ClientRepoFactory
		CatalogRepoFactory
		AuditLogFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// LifecycleUoW manages transactions that move or remove orders together with
	// the records their transitions produce.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, id)
	//   // ... apply transition, write effects and audit entries
	//
	//   err = uow.Commit(ctx)
	LifecycleUoW interface {
		TxManager
		OrderRepoFactory
		ShipmentRepoFactory
		NonConformityRepoFactory
		FinanceEntryRepoFactory
		AuditLogFactory
	}

	LifecycleUoWFactory interface {
		Create() LifecycleUoW
	}

	// SettlementUoW manages payment batch creation.
	SettlementUoW interface {
		TxManager
		FinanceEntryRepoFactory
		PaymentBatchRepoFactory
		AuditLogFactory
	}

	SettlementUoWFactory interface {
		Create() SettlementUoW
	}

	// CatalogUoW manages catalog configuration changes.
	CatalogUoW interface {
		TxManager
		CatalogRepoFactory
		AuditLogFactory
	}

	CatalogUoWFactory interface {
		Create() CatalogUoW
	}

	// MaintenanceUoW manages housekeeping that reads what the store references
	// and records the outcome under the system entity.
	MaintenanceUoW interface {
		TxManager
		ObjectReferencesFactory
		AuditLogFactory
	}

	MaintenanceUoWFactory interface {
		Create() MaintenanceUoW
	}
)
