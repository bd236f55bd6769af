package commands_test

import (
	"testing"
	"time"

	"textile/internal/core/domain/model/finance"
	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var (
	orderID   = kernel.MustNewID(11)
	clientID  = kernel.MustNewID(3)
	selection = order.Selection{Category: "Bed sheet", Type: "Queen", Product: "4 pieces"}
	createdAt = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
)

func orderIn(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(
		orderID,
		clientID,
		selection,
		kernel.MustMoney("10.00"),
		kernel.MustMoney("25.00"),
		order.Details{Notes: order.StructuredNotes{Fabric: "Percale", Color: "White"}},
		status,
		createdAt,
		createdAt,
		1,
	)
	require.NoError(t, err)
	return o
}

func unsettledEntry(t *testing.T, id, orderNum int64, cost, sale string) *finance.Entry {
	t.Helper()
	e, err := finance.NewEntry(kernel.MustNewID(id), kernel.MustNewID(orderNum),
		kernel.MustMoney(cost), kernel.MustMoney(sale), createdAt)
	require.NoError(t, err)
	return e
}
