// Package configrepo stores the catalog in the key/value config table.
package configrepo

import (
	"context"
	"encoding/json"
	"time"

	"textile/internal/adapters/out/postgres/pgerr"
	"textile/internal/core/domain/model/catalog"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConfigDTO struct {
	Key       string         `gorm:"primaryKey"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime:false"`
}

func (ConfigDTO) TableName() string {
	return "config"
}

type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// Load reads the four catalog keys. Keys that are absent are filled from
// catalog.Default and written back.
func (r *GormCatalogRepository) Load(ctx context.Context) (*catalog.Catalog, error) {
	var rows []ConfigDTO
	err := r.db.WithContext(ctx).Where("key IN ?", catalog.Keys()).Find(&rows).Error
	if err != nil {
		return nil, pgerr.Translate(err, "load catalog", "config", "catalog")
	}

	stored := make(map[string][]byte, len(rows))
	for _, row := range rows {
		stored[row.Key] = row.Value
	}

	defaults := catalog.Default().Values()
	var missing []ConfigDTO
	for _, key := range catalog.Keys() {
		if _, ok := stored[key]; ok {
			continue
		}
		raw, err := json.Marshal(defaults[key])
		if err != nil {
			return nil, err
		}
		stored[key] = raw
		missing = append(missing, ConfigDTO{Key: key, Value: raw, UpdatedAt: time.Now().UTC()})
	}

	if len(missing) > 0 {
		err = r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&missing).Error
		if err != nil {
			return nil, pgerr.Translate(err, "seed catalog", "config", "catalog")
		}
	}

	return catalog.FromStored(stored)
}

// Save upserts every catalog key.
func (r *GormCatalogRepository) Save(ctx context.Context, c *catalog.Catalog) error {
	now := time.Now().UTC()
	values := c.Values()

	rows := make([]ConfigDTO, 0, len(values))
	for _, key := range catalog.Keys() {
		raw, err := json.Marshal(values[key])
		if err != nil {
			return err
		}
		rows = append(rows, ConfigDTO{Key: key, Value: raw, UpdatedAt: now})
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rows).Error
	return pgerr.Translate(err, "save catalog", "config", "catalog")
}
