package queries

import (
	"context"

	"textile/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VerifyLedgerQueryHandler recomputes margins and batch totals from the stored
// rows. It only reads.
type VerifyLedgerQueryHandler struct {
	db *gorm.DB
}

func NewVerifyLedgerQueryHandler(db *gorm.DB) VerifyLedgerQueryHandler {
	return VerifyLedgerQueryHandler{db: db}
}

func (h VerifyLedgerQueryHandler) Handle(ctx context.Context, query VerifyLedgerQuery) (LedgerReport, error) {
	if err := query.Validate(); err != nil {
		return LedgerReport{}, err
	}

	report := LedgerReport{
		MarginMismatches: make([]MarginMismatch, 0),
		BatchMismatches:  make([]BatchMismatch, 0),
		DanglingEntries:  make([]kernel.ID, 0),
	}
	db := h.db.WithContext(ctx)

	if err := h.checkEntries(db, &report); err != nil {
		return LedgerReport{}, err
	}
	if err := h.checkBatches(db, &report); err != nil {
		return LedgerReport{}, err
	}
	return report, nil
}

func (h VerifyLedgerQueryHandler) checkEntries(db *gorm.DB, report *LedgerReport) error {
	rows, err := db.Raw(`
		SELECT id, cost, sale, margin, settled, batch_id IS NOT NULL
		FROM finance_entries
		ORDER BY id
	`).Rows()
	if err != nil {
		return storageError("verify finance entries", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id                 int64
			cost, sale, margin decimal.Decimal
			settled, hasBatch  bool
		)
		if err = rows.Scan(&id, &cost, &sale, &margin, &settled, &hasBatch); err != nil {
			return storageError("scan finance entry", err)
		}
		entryID, idErr := kernel.NewID(id)
		if idErr != nil {
			return idErr
		}

		report.EntriesChecked++
		if expected := sale.Sub(cost); !margin.Equal(expected) {
			report.MarginMismatches = append(report.MarginMismatches, MarginMismatch{
				EntryID:  entryID,
				Stored:   margin,
				Expected: expected,
			})
		}
		if settled != hasBatch {
			report.DanglingEntries = append(report.DanglingEntries, entryID)
		}
	}
	return storageError("verify finance entries", rows.Err())
}

func (h VerifyLedgerQueryHandler) checkBatches(db *gorm.DB, report *LedgerReport) error {
	rows, err := db.Raw(`
		SELECT b.id, b.total, COALESCE(SUM(f.cost), 0)
		FROM payment_batches b
		LEFT JOIN finance_entries f ON f.batch_id = b.id
		GROUP BY b.id, b.total
		ORDER BY b.id
	`).Rows()
	if err != nil {
		return storageError("verify payment batches", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id              int64
			total, computed decimal.Decimal
		)
		if err = rows.Scan(&id, &total, &computed); err != nil {
			return storageError("scan payment batch", err)
		}
		batchID, idErr := kernel.NewID(id)
		if idErr != nil {
			return idErr
		}

		report.BatchesChecked++
		if !total.Equal(computed) {
			report.BatchMismatches = append(report.BatchMismatches, BatchMismatch{
				BatchID:  batchID,
				Total:    total,
				Computed: computed,
			})
		}
	}
	return storageError("verify payment batches", rows.Err())
}
