package queries

import (
	"time"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/order"
	"textile/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type scanner interface {
	Scan(dest ...any) error
}

func scanOrderSummary(row scanner, extra ...any) (OrderSummary, error) {
	var (
		id, clientID         int64
		clientName           string
		category, typ, prod  string
		cost, sale           decimal.Decimal
		status               string
		createdAt, updatedAt time.Time
	)
	dest := append([]any{
		&id, &clientID, &clientName, &category, &typ, &prod,
		&cost, &sale, &status, &createdAt, &updatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return OrderSummary{}, storageError("scan order", err)
	}

	orderID, err := kernel.NewID(id)
	if err != nil {
		return OrderSummary{}, err
	}
	client, err := kernel.NewID(clientID)
	if err != nil {
		return OrderSummary{}, err
	}
	priceCost, err := kernel.NewMoney(cost)
	if err != nil {
		return OrderSummary{}, err
	}
	priceSale, err := kernel.NewMoney(sale)
	if err != nil {
		return OrderSummary{}, err
	}
	st, err := order.StatusFromString(status)
	if err != nil {
		return OrderSummary{}, err
	}

	return OrderSummary{
		ID:         orderID,
		ClientID:   client,
		ClientName: clientName,
		Selection:  order.Selection{Category: category, Type: typ, Product: prod},
		PriceCost:  priceCost,
		PriceSale:  priceSale,
		Status:     st,
		CreatedAt:  createdAt.UTC(),
		UpdatedAt:  updatedAt.UTC(),
	}, nil
}

// storageError classifies read failures. Queries never write, so every driver
// error is a storage problem from the caller's point of view.
func storageError(operation string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewStorageError(operation, err)
}
