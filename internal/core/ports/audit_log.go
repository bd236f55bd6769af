package ports

import (
	"context"

	"textile/internal/core/domain/model/audit"
)

// AuditLog is the append-only audit trail. It has no update or delete operation.
// Append runs inside the caller's transaction, so an audit failure fails the change.
type AuditLog interface {
	Append(ctx context.Context, entry *audit.Entry) error
}
