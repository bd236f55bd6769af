package queries

import (
	"errors"

	"textile/internal/core/domain/model/order"
	"textile/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetStatisticsQueryIsNotConstructed = errors.New(
	"GetStatisticsQuery must be created via NewGetStatisticsQuery constructor",
)

// GetStatisticsQuery reads the counters of the administration overview.
type GetStatisticsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetStatisticsQuery() GetStatisticsQuery {
	return GetStatisticsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetStatisticsQuery) Validate() error {
	return q.guard.Validate(ErrGetStatisticsQueryIsNotConstructed)
}

// Statistics are counted from one snapshot of the store.
type Statistics struct {
	Clients int
	Orders  int

	// OrdersByStatus has a count for every status, reserved ones included.
	OrdersByStatus map[order.Status]int

	UnsettledEntries int
	UnsettledCost    decimal.Decimal
	UnsettledMargin  decimal.Decimal

	PaymentBatches int
	SettledTotal   decimal.Decimal
}
