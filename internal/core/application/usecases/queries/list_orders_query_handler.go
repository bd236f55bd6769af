package queries

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

const orderSummaryColumns = `
	o.id,
	o.client_id,
	COALESCE(c.name, ''),
	o.category,
	o.type,
	o.product,
	o.price_cost,
	o.price_sale,
	o.status,
	o.created_at,
	o.updated_at`

// ListOrdersQueryHandler reads order summaries joined with the client name.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle returns the matching orders ordered by id descending. An empty result is
// an empty slice.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stmt := fmt.Sprintf(`
		SELECT %s
		FROM orders o
		LEFT JOIN clients c ON c.id = o.client_id`, orderSummaryColumns)
	var args []any
	if status, ok := query.Status(); ok {
		stmt += "\n\t\tWHERE o.status = ?"
		args = append(args, status.String())
	}
	stmt += "\n\t\tORDER BY o.id DESC"

	rows, err := h.db.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return nil, storageError("list orders", err)
	}
	defer rows.Close()

	orders := make([]OrderSummary, 0)
	for rows.Next() {
		summary, err := scanOrderSummary(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, storageError("list orders", err)
	}

	return orders, nil
}
