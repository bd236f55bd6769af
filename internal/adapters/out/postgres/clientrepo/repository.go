package clientrepo

import (
	"context"
	"errors"

	"textile/internal/adapters/out/postgres/pgerr"
	"textile/internal/adapters/out/postgres/sequence"
	"textile/internal/core/domain/model/client"
	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/errs"

	"gorm.io/gorm"
)

const entity = "client"

type ClientDTO struct {
	ID       int64  `gorm:"primaryKey"`
	Name     string `gorm:"not null"`
	Address  string `gorm:"not null;default:''"`
	TaxID    string `gorm:"not null;default:''"`
	Phone    string `gorm:"not null;default:''"`
	Standing string `gorm:"not null;default:'GOOD'"`
}

func (ClientDTO) TableName() string {
	return "clients"
}

type GormClientRepository struct {
	db *gorm.DB
}

func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

func (r *GormClientRepository) NextID(ctx context.Context) (kernel.ID, error) {
	return sequence.Next(ctx, r.db, ClientDTO{}.TableName())
}

func (r *GormClientRepository) Add(ctx context.Context, c *client.Client) error {
	if err := c.Validate(); err != nil {
		return err
	}

	contact := c.Contact()
	dto := ClientDTO{
		ID:       c.ID().Int64(),
		Name:     c.Name(),
		Address:  contact.Address,
		TaxID:    contact.TaxID,
		Phone:    contact.Phone,
		Standing: string(c.Standing()),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "add client", entity, dto.ID)
	}
	return nil
}

func (r *GormClientRepository) Get(ctx context.Context, id kernel.ID) (*client.Client, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ClientDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(entity, id.Int64())
		}
		return nil, pgerr.Translate(err, "get client", entity, id.Int64())
	}

	return client.RestoreClient(id, dto.Name, client.Contact{
		Address: dto.Address,
		TaxID:   dto.TaxID,
		Phone:   dto.Phone,
	}, client.Standing(dto.Standing))
}
