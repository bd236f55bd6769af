// Package financerepo persists finance entries. An entry is written once at
// delivery and updated once at settlement; it is never deleted.
package financerepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"textile/internal/adapters/out/postgres/pgerr"
	"textile/internal/adapters/out/postgres/sequence"
	"textile/internal/core/domain/model/finance"
	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entity = "finance_entry"

// EntryDTO is the row layout of finance_entries. order_id is unique: an order is
// delivered, and therefore booked, at most once.
type EntryDTO struct {
	ID        int64           `gorm:"primaryKey"`
	OrderID   int64           `gorm:"not null;uniqueIndex"`
	Cost      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Sale      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Margin    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Settled   bool            `gorm:"not null;default:false;index"`
	BatchID   sql.NullInt64   `gorm:"index"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime:false"`
}

func (EntryDTO) TableName() string {
	return "finance_entries"
}

type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

type GormEntryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormEntryRepository(db *gorm.DB, tracker aggregateTracker) *GormEntryRepository {
	return &GormEntryRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormEntryRepository) NextID(ctx context.Context) (kernel.ID, error) {
	return sequence.Next(ctx, r.db, EntryDTO{}.TableName())
}

// Add inserts a new entry. A second entry for the same order violates the unique
// index and surfaces as a concurrency conflict.
func (r *GormEntryRepository) Add(ctx context.Context, entry *finance.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "add finance entry", entity, dto.OrderID)
	}

	r.tracker.TrackAggregate(entry.ID(), entry)
	return nil
}

func (r *GormEntryRepository) ExistsForOrder(ctx context.Context, orderID kernel.ID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&EntryDTO{}).Where("order_id = ?", orderID.Int64()).Count(&count).Error
	if err != nil {
		return false, pgerr.Translate(err, "find finance entry", entity, orderID.Int64())
	}
	return count > 0, nil
}

// GetUnsettledForUpdate locks the unsettled entries of the given orders with
// FOR UPDATE NOWAIT.
func (r *GormEntryRepository) GetUnsettledForUpdate(
	ctx context.Context,
	orderIDs []kernel.ID,
) ([]*finance.Entry, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(orderIDs))
	for _, id := range orderIDs {
		ids = append(ids, id.Int64())
	}

	var dtos []EntryDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "NOWAIT"}).
		Where("order_id IN ? AND settled = false", ids).
		Order("order_id").
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Translate(err, "lock finance entries", entity, ids)
	}

	entries := make([]*finance.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Settle marks the stored row settled. Only a row that is still unsettled is
// touched.
func (r *GormEntryRepository) Settle(ctx context.Context, entry *finance.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	batchID, ok := entry.BatchID()
	if !ok || !entry.IsSettled() {
		return errs.NewValueIsRequiredErrorWithCause("batch_id",
			fmt.Errorf("entry %s is not settled", entry.ID()))
	}

	result := r.db.WithContext(ctx).Model(&EntryDTO{}).
		Where("id = ? AND settled = false", entry.ID().Int64()).
		Updates(map[string]any{
			"settled":  true,
			"batch_id": batchID.Int64(),
		})
	if result.Error != nil {
		return pgerr.Translate(result.Error, "settle finance entry", entity, entry.ID().Int64())
	}
	if result.RowsAffected == 0 {
		return errs.NewConcurrencyConflictErrorWithCause(entity, entry.ID().Int64(), finance.ErrEntryIsAlreadySettled)
	}

	r.tracker.TrackAggregate(entry.ID(), entry)
	return nil
}

func fromDomain(e *finance.Entry) EntryDTO {
	dto := EntryDTO{
		ID:        e.ID().Int64(),
		OrderID:   e.OrderID().Int64(),
		Cost:      e.Cost().Decimal(),
		Sale:      e.Sale().Decimal(),
		Margin:    e.Margin(),
		Settled:   e.IsSettled(),
		CreatedAt: e.CreatedAt(),
	}
	if batchID, ok := e.BatchID(); ok {
		dto.BatchID = sql.NullInt64{Int64: batchID.Int64(), Valid: true}
	}
	return dto
}

func toDomain(dto EntryDTO) (*finance.Entry, error) {
	id, err := kernel.NewID(dto.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.NewID(dto.OrderID)
	if err != nil {
		return nil, err
	}
	cost, err := kernel.NewMoney(dto.Cost)
	if err != nil {
		return nil, err
	}
	sale, err := kernel.NewMoney(dto.Sale)
	if err != nil {
		return nil, err
	}

	var batchID *kernel.ID
	if dto.BatchID.Valid {
		b, err := kernel.NewID(dto.BatchID.Int64)
		if err != nil {
			return nil, err
		}
		batchID = &b
	}

	return finance.RestoreEntry(id, orderID, cost, sale, dto.Margin, dto.Settled, batchID, dto.CreatedAt)
}
