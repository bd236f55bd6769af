// Package shipmentrepo persists shipment records.
package shipmentrepo

import (
	"context"
	"time"

	"textile/internal/adapters/out/postgres/pgerr"
	"textile/internal/adapters/out/postgres/sequence"
	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type ShipmentDTO struct {
	ID          int64     `gorm:"primaryKey"`
	OrderID     int64     `gorm:"not null;index"`
	Medium      string    `gorm:"not null"`
	SentAt      time.Time `gorm:"not null"`
	DocumentRef string    `gorm:"not null"`
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

type GormShipmentRepository struct {
	db *gorm.DB
}

func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

func (r *GormShipmentRepository) NextID(ctx context.Context) (kernel.ID, error) {
	return sequence.Next(ctx, r.db, ShipmentDTO{}.TableName())
}

func (r *GormShipmentRepository) Add(ctx context.Context, s *order.Shipment) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := ShipmentDTO{
		ID:          s.ID().Int64(),
		OrderID:     s.OrderID().Int64(),
		Medium:      s.Medium(),
		SentAt:      s.SentAt(),
		DocumentRef: s.DocumentRef(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "add shipment", "shipment", dto.ID)
	}
	return nil
}

// ListByOrder returns the shipments of an order, oldest first.
func (r *GormShipmentRepository) ListByOrder(ctx context.Context, orderID kernel.ID) ([]*order.Shipment, error) {
	var dtos []ShipmentDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Int64()).
		Order("sent_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Translate(err, "list shipments", "shipment", orderID.Int64())
	}

	shipments := make([]*order.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}
	return shipments, nil
}

func (r *GormShipmentRepository) DeleteByOrder(ctx context.Context, orderID kernel.ID) error {
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID.Int64()).Delete(&ShipmentDTO{}).Error
	return pgerr.Translate(err, "delete shipments", "shipment", orderID.Int64())
}

func toDomain(dto ShipmentDTO) (*order.Shipment, error) {
	id, err := kernel.NewID(dto.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.NewID(dto.OrderID)
	if err != nil {
		return nil, err
	}
	return order.RestoreShipment(id, orderID, dto.Medium, dto.DocumentRef, dto.SentAt)
}
