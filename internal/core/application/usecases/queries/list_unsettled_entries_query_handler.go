package queries

import (
	"context"

	"textile/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListUnsettledEntriesQueryHandler struct {
	db *gorm.DB
}

func NewListUnsettledEntriesQueryHandler(db *gorm.DB) ListUnsettledEntriesQueryHandler {
	return ListUnsettledEntriesQueryHandler{db: db}
}

// Handle returns unsettled entries oldest first.
func (h ListUnsettledEntriesQueryHandler) Handle(
	ctx context.Context,
	query ListUnsettledEntriesQuery,
) ([]UnsettledEntry, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			f.id,
			f.order_id,
			f.cost,
			f.sale,
			f.margin,
			f.created_at,
			o.category,
			o.type,
			o.product,
			o.client_id,
			COALESCE(c.name, '')
		FROM finance_entries f
		JOIN orders o ON o.id = f.order_id
		LEFT JOIN clients c ON c.id = o.client_id
		WHERE f.settled = false
			AND (CAST(? AS timestamptz) IS NULL OR f.created_at >= ?)
			AND (CAST(? AS timestamptz) IS NULL OR f.created_at < ?)
		ORDER BY f.created_at, f.id
	`, query.From(), query.From(), query.To(), query.To()).Rows()
	if err != nil {
		return nil, storageError("list unsettled entries", err)
	}
	defer rows.Close()

	entries := make([]UnsettledEntry, 0)
	for rows.Next() {
		var (
			entryID, orderID, clientID int64
			cost, sale                 decimal.Decimal
			e                          UnsettledEntry
		)
		err = rows.Scan(
			&entryID,
			&orderID,
			&cost,
			&sale,
			&e.Margin,
			&e.CreatedAt,
			&e.Selection.Category,
			&e.Selection.Type,
			&e.Selection.Product,
			&clientID,
			&e.ClientName,
		)
		if err != nil {
			return nil, storageError("scan unsettled entry", err)
		}

		if e.EntryID, err = kernel.NewID(entryID); err != nil {
			return nil, err
		}
		if e.OrderID, err = kernel.NewID(orderID); err != nil {
			return nil, err
		}
		if e.ClientID, err = kernel.NewID(clientID); err != nil {
			return nil, err
		}
		if e.Cost, err = kernel.NewMoney(cost); err != nil {
			return nil, err
		}
		if e.Sale, err = kernel.NewMoney(sale); err != nil {
			return nil, err
		}
		e.CreatedAt = e.CreatedAt.UTC()
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, storageError("list unsettled entries", err)
	}
	return entries, nil
}

