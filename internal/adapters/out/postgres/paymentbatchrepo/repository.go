// Package paymentbatchrepo persists payment batches. Batches are immutable.
package paymentbatchrepo

import (
	"context"
	"errors"
	"time"

	"textile/internal/adapters/out/postgres/pgerr"
	"textile/internal/adapters/out/postgres/sequence"
	"textile/internal/core/domain/model/finance"
	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const entity = "payment_batch"

type BatchDTO struct {
	ID        int64           `gorm:"primaryKey"`
	Total     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime:false"`
}

func (BatchDTO) TableName() string {
	return "payment_batches"
}

type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

type GormBatchRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormBatchRepository(db *gorm.DB, tracker aggregateTracker) *GormBatchRepository {
	return &GormBatchRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormBatchRepository) NextID(ctx context.Context) (kernel.ID, error) {
	return sequence.Next(ctx, r.db, BatchDTO{}.TableName())
}

func (r *GormBatchRepository) Add(ctx context.Context, batch *finance.PaymentBatch) error {
	if err := batch.Validate(); err != nil {
		return err
	}

	dto := BatchDTO{
		ID:        batch.ID().Int64(),
		Total:     batch.Total().Decimal(),
		CreatedAt: batch.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "add payment batch", entity, dto.ID)
	}

	r.tracker.TrackAggregate(batch.ID(), batch)
	return nil
}

func (r *GormBatchRepository) Get(ctx context.Context, id kernel.ID) (*finance.PaymentBatch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BatchDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(entity, id.Int64())
		}
		return nil, pgerr.Translate(err, "get payment batch", entity, id.Int64())
	}

	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}
	return finance.RestorePaymentBatch(id, total, dto.CreatedAt)
}
