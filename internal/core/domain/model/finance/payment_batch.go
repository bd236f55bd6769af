package finance

import (
	"errors"
	"time"

	"textile/internal/core/domain/model/kernel"
)

// ErrPaymentBatchIsNotConstructed is returned when a PaymentBatch was not created
// through NewPaymentBatch or RestorePaymentBatch.
var ErrPaymentBatchIsNotConstructed = errors.New("PaymentBatch must be created via NewPaymentBatch constructor")

// PaymentBatch is an immutable settlement event. Its total is the sum of the cost of
// the entries it settled, fixed at creation.
type PaymentBatch struct {
	id        kernel.ID
	total     kernel.Money
	createdAt time.Time

	isConstructed bool
}

// NewPaymentBatch creates a batch with a precomputed total. Use services.Settlement
// to build a batch from entries; it computes the total and settles them together.
func NewPaymentBatch(id kernel.ID, total kernel.Money, now time.Time) (*PaymentBatch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return &PaymentBatch{id: id, total: total, createdAt: now.UTC(), isConstructed: true}, nil
}

// RestorePaymentBatch rebuilds a batch from persistence.
func RestorePaymentBatch(id kernel.ID, total kernel.Money, createdAt time.Time) (*PaymentBatch, error) {
	return NewPaymentBatch(id, total, createdAt)
}

func (b *PaymentBatch) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrPaymentBatchIsNotConstructed
	}
	return nil
}

func (b *PaymentBatch) ID() kernel.ID        { return b.id }
func (b *PaymentBatch) Total() kernel.Money  { return b.total }
func (b *PaymentBatch) CreatedAt() time.Time { return b.createdAt }

type BatchSnapshot struct {
	ID        int64     `json:"id"`
	Total     string    `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

func (b *PaymentBatch) Snapshot() BatchSnapshot {
	return BatchSnapshot{ID: b.id.Int64(), Total: b.total.String(), CreatedAt: b.createdAt}
}
