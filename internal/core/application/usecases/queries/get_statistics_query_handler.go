package queries

import (
	"context"
	"database/sql"

	"textile/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetStatisticsQueryHandler struct {
	db *gorm.DB
}

func NewGetStatisticsQueryHandler(db *gorm.DB) GetStatisticsQueryHandler {
	return GetStatisticsQueryHandler{db: db}
}

// Handle runs every count inside one read-only repeatable read transaction, so
// the totals agree with each other.
func (h GetStatisticsQueryHandler) Handle(ctx context.Context, query GetStatisticsQuery) (Statistics, error) {
	if err := query.Validate(); err != nil {
		return Statistics{}, err
	}

	stats := Statistics{OrdersByStatus: make(map[order.Status]int)}
	for _, s := range order.AllStatuses() {
		stats.OrdersByStatus[s] = 0
	}

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := countTotals(tx, &stats); err != nil {
			return err
		}
		if err := countOrdersByStatus(tx, &stats); err != nil {
			return err
		}
		return sumUnsettled(tx, &stats)
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return Statistics{}, err
	}

	return stats, nil
}

func countTotals(tx *gorm.DB, stats *Statistics) error {
	row := tx.Raw(`
		SELECT
			(SELECT COUNT(*) FROM clients),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM payment_batches),
			(SELECT COALESCE(SUM(total), 0) FROM payment_batches)
	`).Row()
	if err := row.Scan(&stats.Clients, &stats.Orders, &stats.PaymentBatches, &stats.SettledTotal); err != nil {
		return storageError("count totals", err)
	}
	return nil
}

func countOrdersByStatus(tx *gorm.DB, stats *Statistics) error {
	rows, err := tx.Raw(`
		SELECT status, COUNT(*)
		FROM orders
		GROUP BY status
	`).Rows()
	if err != nil {
		return storageError("count orders by status", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name  string
			count int
		)
		if err = rows.Scan(&name, &count); err != nil {
			return storageError("scan status count", err)
		}
		status, statusErr := order.StatusFromString(name)
		if statusErr != nil {
			return statusErr
		}
		stats.OrdersByStatus[status] = count
	}
	return storageError("count orders by status", rows.Err())
}

func sumUnsettled(tx *gorm.DB, stats *Statistics) error {
	var cost, margin decimal.Decimal
	row := tx.Raw(`
		SELECT COUNT(*), COALESCE(SUM(cost), 0), COALESCE(SUM(margin), 0)
		FROM finance_entries
		WHERE NOT settled
	`).Row()
	if err := row.Scan(&stats.UnsettledEntries, &cost, &margin); err != nil {
		return storageError("sum unsettled entries", err)
	}
	stats.UnsettledCost = cost
	stats.UnsettledMargin = margin
	return nil
}
