package queries

import (
	"context"
	"database/sql"
	"time"

	"textile/internal/core/domain/model/audit"

	"gorm.io/gorm"
)

type ListAuditEntriesQueryHandler struct {
	db *gorm.DB
}

func NewListAuditEntriesQueryHandler(db *gorm.DB) ListAuditEntriesQueryHandler {
	return ListAuditEntriesQueryHandler{db: db}
}

// Handle returns entries by timestamp descending, ties broken by id descending.
func (h ListAuditEntriesQueryHandler) Handle(ctx context.Context, query ListAuditEntriesQuery) ([]*audit.Entry, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, entity, entity_id, action, field, before, after, actor, ts
		FROM audit_log
		ORDER BY ts DESC, id DESC
		LIMIT ?
	`, query.Limit()).Rows()
	if err != nil {
		return nil, storageError("list audit entries", err)
	}
	defer rows.Close()

	entries := make([]*audit.Entry, 0, query.Limit())
	for rows.Next() {
		var (
			id                       int64
			entity, entityID, action string
			field                    sql.NullString
			before, after            []byte
			actor                    string
			ts                       time.Time
		)
		if err = rows.Scan(&id, &entity, &entityID, &action, &field, &before, &after, &actor, &ts); err != nil {
			return nil, storageError("scan audit entry", err)
		}
		entries = append(entries, audit.RestoreEntry(
			id, entity, entityID, audit.Action(action), field.String, before, after, actor, ts))
	}

	if err = rows.Err(); err != nil {
		return nil, storageError("list audit entries", err)
	}
	return entries, nil
}
