// Package orderrepo persists order aggregates in the orders table.
package orderrepo

import (
	"encoding/json"
	"time"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderDTO is the row layout of the orders table. Notes and photos are jsonb;
// prices are numeric(12,2). Timestamps are owned by the domain, not by gorm.
type OrderDTO struct {
	ID        int64           `gorm:"primaryKey"`
	ClientID  int64           `gorm:"not null;index"`
	Category  string          `gorm:"not null"`
	Type      string          `gorm:"not null"`
	Product   string          `gorm:"not null"`
	PriceCost decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PriceSale decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Notes     datatypes.JSON  `gorm:"type:jsonb;not null"`
	FreeNotes string          `gorm:"not null;default:''"`
	Photos    datatypes.JSON  `gorm:"type:jsonb;not null"`
	Status    string          `gorm:"not null;index"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time       `gorm:"not null;autoUpdateTime:false"`
	Version   int             `gorm:"not null;default:1"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) (OrderDTO, error) {
	notes, err := json.Marshal(o.Notes())
	if err != nil {
		return OrderDTO{}, err
	}
	photos, err := json.Marshal(photosOrEmpty(o.Photos()))
	if err != nil {
		return OrderDTO{}, err
	}

	sel := o.Selection()
	return OrderDTO{
		ID:        o.ID().Int64(),
		ClientID:  o.ClientID().Int64(),
		Category:  sel.Category,
		Type:      sel.Type,
		Product:   sel.Product,
		PriceCost: o.PriceCost().Decimal(),
		PriceSale: o.PriceSale().Decimal(),
		Notes:     notes,
		FreeNotes: o.FreeNotes(),
		Photos:    photos,
		Status:    o.Status().String(),
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
		Version:   o.Version(),
	}, nil
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.NewID(dto.ID)
	if err != nil {
		return nil, err
	}
	clientID, err := kernel.NewID(dto.ClientID)
	if err != nil {
		return nil, err
	}
	cost, err := kernel.NewMoney(dto.PriceCost)
	if err != nil {
		return nil, err
	}
	sale, err := kernel.NewMoney(dto.PriceSale)
	if err != nil {
		return nil, err
	}
	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	details, err := DecodeDetails(dto.Notes, dto.FreeNotes, dto.Photos)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		clientID,
		order.Selection{Category: dto.Category, Type: dto.Type, Product: dto.Product},
		cost,
		sale,
		details,
		status,
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.Version,
	)
}

// DecodeDetails rebuilds the descriptive fields from their stored columns.
// Also used by read models that select order rows directly.
func DecodeDetails(notes []byte, freeNotes string, photos []byte) (order.Details, error) {
	details := order.Details{FreeNotes: freeNotes}
	if len(notes) > 0 {
		if err := json.Unmarshal(notes, &details.Notes); err != nil {
			return order.Details{}, err
		}
	}
	if len(photos) > 0 {
		if err := json.Unmarshal(photos, &details.Photos); err != nil {
			return order.Details{}, err
		}
	}
	return details, nil
}

func photosOrEmpty(p order.Photos) order.Photos {
	if p == nil {
		return order.Photos{}
	}
	return p
}
