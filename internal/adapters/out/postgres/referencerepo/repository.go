// Package referencerepo reads the object references stored across the order tables.
package referencerepo

import (
	"context"

	"textile/internal/adapters/out/postgres/pgerr"
	"textile/internal/core/domain/model/audit"

	"gorm.io/gorm"
)

const referencedObjects = `
	SELECT jsonb_array_elements_text(photos) AS ref FROM orders
	UNION
	SELECT jsonb_array_elements_text(photos) FROM nonconformities
	UNION
	SELECT document_ref FROM shipments
	UNION
	SELECT after #>> '{}' FROM audit_log
	WHERE action = ? AND after IS NOT NULL AND jsonb_typeof(after) = 'string'`

type GormObjectReferences struct {
	db *gorm.DB
}

func NewGormObjectReferences(db *gorm.DB) *GormObjectReferences {
	return &GormObjectReferences{db: db}
}

// Referenced returns the distinct references, in no particular order.
func (r *GormObjectReferences) Referenced(ctx context.Context) ([]string, error) {
	refs := make([]string, 0)
	err := r.db.WithContext(ctx).Raw(referencedObjects, string(audit.ActionExportPDF)).Scan(&refs).Error
	if err != nil {
		return nil, pgerr.Translate(err, "read object references", "object", "*")
	}
	return refs, nil
}
