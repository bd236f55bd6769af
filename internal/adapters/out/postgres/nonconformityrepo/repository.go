// Package nonconformityrepo persists rejected-delivery reports.
package nonconformityrepo

import (
	"context"
	"encoding/json"
	"time"

	"textile/internal/adapters/out/postgres/pgerr"
	"textile/internal/adapters/out/postgres/sequence"
	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/order"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NonConformityDTO struct {
	ID          int64          `gorm:"primaryKey"`
	OrderID     int64          `gorm:"not null;index"`
	Kind        string         `gorm:"not null"`
	Description string         `gorm:"not null"`
	Photos      datatypes.JSON `gorm:"type:jsonb;not null"`
	Count       int            `gorm:"not null;default:1"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime:false"`
}

func (NonConformityDTO) TableName() string {
	return "nonconformities"
}

type GormNonConformityRepository struct {
	db *gorm.DB
}

func NewGormNonConformityRepository(db *gorm.DB) *GormNonConformityRepository {
	return &GormNonConformityRepository{db: db}
}

func (r *GormNonConformityRepository) NextID(ctx context.Context) (kernel.ID, error) {
	return sequence.Next(ctx, r.db, NonConformityDTO{}.TableName())
}

func (r *GormNonConformityRepository) Add(ctx context.Context, nc *order.NonConformity) error {
	if err := nc.Validate(); err != nil {
		return err
	}

	photos := nc.Photos()
	if photos == nil {
		photos = order.Photos{}
	}
	raw, err := json.Marshal(photos)
	if err != nil {
		return err
	}

	dto := NonConformityDTO{
		ID:          nc.ID().Int64(),
		OrderID:     nc.OrderID().Int64(),
		Kind:        string(nc.Kind()),
		Description: nc.Description(),
		Photos:      raw,
		Count:       nc.Count(),
		CreatedAt:   nc.CreatedAt(),
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "add nonconformity", "nonconformity", dto.ID)
	}
	return nil
}

// ListByOrder returns the reports of an order, oldest first.
func (r *GormNonConformityRepository) ListByOrder(
	ctx context.Context,
	orderID kernel.ID,
) ([]*order.NonConformity, error) {
	var dtos []NonConformityDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Int64()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Translate(err, "list nonconformities", "nonconformity", orderID.Int64())
	}

	out := make([]*order.NonConformity, 0, len(dtos))
	for _, dto := range dtos {
		nc, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, nc)
	}
	return out, nil
}

func (r *GormNonConformityRepository) DeleteByOrder(ctx context.Context, orderID kernel.ID) error {
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID.Int64()).Delete(&NonConformityDTO{}).Error
	return pgerr.Translate(err, "delete nonconformities", "nonconformity", orderID.Int64())
}

func toDomain(dto NonConformityDTO) (*order.NonConformity, error) {
	id, err := kernel.NewID(dto.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.NewID(dto.OrderID)
	if err != nil {
		return nil, err
	}

	var photos order.Photos
	if len(dto.Photos) > 0 {
		if err = json.Unmarshal(dto.Photos, &photos); err != nil {
			return nil, err
		}
	}

	return order.RestoreNonConformity(id, orderID, order.NonConformityKind(dto.Kind),
		dto.Description, photos, dto.Count, dto.CreatedAt)
}
