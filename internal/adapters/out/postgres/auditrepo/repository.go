// Package auditrepo is the append-only audit_log table.
package auditrepo

import (
	"context"
	"time"

	"textile/internal/adapters/out/postgres/pgerr"
	"textile/internal/core/domain/model/audit"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EntryDTO is the row layout of audit_log. Field, Before and After are nullable.
type EntryDTO struct {
	ID       int64           `gorm:"primaryKey;autoIncrement"`
	Entity   string          `gorm:"not null;index:idx_audit_entity,priority:1"`
	EntityID string          `gorm:"not null;index:idx_audit_entity,priority:2"`
	Action   string          `gorm:"not null"`
	Field    *string         `gorm:"column:field"`
	Before   *datatypes.JSON `gorm:"type:jsonb"`
	After    *datatypes.JSON `gorm:"type:jsonb"`
	Actor    string          `gorm:"not null"`
	Ts       time.Time       `gorm:"not null;index"`
}

func (EntryDTO) TableName() string {
	return "audit_log"
}

type GormAuditLog struct {
	db *gorm.DB
}

func NewGormAuditLog(db *gorm.DB) *GormAuditLog {
	return &GormAuditLog{db: db}
}

// Append inserts one entry. The id is assigned by the database.
func (l *GormAuditLog) Append(ctx context.Context, entry *audit.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := EntryDTO{
		Entity:   entry.Entity(),
		EntityID: entry.EntityID(),
		Action:   string(entry.Action()),
		Before:   jsonOrNil(entry.Before()),
		After:    jsonOrNil(entry.After()),
		Actor:    entry.Actor(),
		Ts:       entry.Timestamp(),
	}
	if field := entry.Field(); field != "" {
		dto.Field = &field
	}

	if err := l.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "append audit entry", "audit_log", entry.EntityID())
	}
	return nil
}

func jsonOrNil(raw []byte) *datatypes.JSON {
	if len(raw) == 0 {
		return nil
	}
	v := datatypes.JSON(raw)
	return &v
}
