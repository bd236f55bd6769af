package order_test

import (
	"testing"

	"textile/internal/core/domain/model/order"
	"textile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTransitionTable_Lookup(t *testing.T) {
	table := order.DefaultTransitionTable()

	tests := []struct {
		name    string
		from    order.Status
		trigger order.Trigger
		to      order.Status
		effects []order.Effect
	}{
		{"send to supplier", order.Created, order.SendToSupplier, order.AwaitingConfection, []order.Effect{order.RecordShipment}},
		{"arrive conforming", order.AwaitingConfection, order.ArriveConforming, order.InStock, nil},
		{"arrive non-conforming", order.AwaitingConfection, order.ArriveNonConforming, order.ReceivedNonConforming, nil},
		{"return to edit", order.AwaitingConfection, order.ReturnToEdit, order.Created, nil},
		{"resend after nonconformity", order.ReceivedNonConforming, order.ResendAfterNonConformity, order.AwaitingConfection, []order.Effect{order.RecordNonConformity}},
		{"complete delivery", order.InStock, order.CompleteDelivery, order.Delivered, []order.Effect{order.RevisePrices, order.CreateFinanceEntry}},
		{"return to confection", order.InStock, order.ReturnToConfection, order.AwaitingConfection, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := table.Lookup(tt.from, tt.trigger)

			require.NoError(t, err)
			assert.Equal(t, tt.to, tr.To)
			assert.Equal(t, tt.effects, tr.Effects)
		})
	}

	t.Run("should reject delivery from CREATED", func(t *testing.T) {
		_, err := table.Lookup(order.Created, order.CompleteDelivery)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "COMPLETE_DELIVERY from CREATED")
	})

	t.Run("should reject any trigger from DELIVERED", func(t *testing.T) {
		for _, trigger := range order.AllTriggers() {
			_, err := table.Lookup(order.Delivered, trigger)
			require.Error(t, err, trigger.String())
		}
	})

	t.Run("should reject unknown trigger", func(t *testing.T) {
		_, err := table.Lookup(order.Created, order.UnknownTrigger)

		require.Error(t, err)
	})

	t.Run("should not leak effects slice", func(t *testing.T) {
		tr, _ := table.Lookup(order.InStock, order.CompleteDelivery)
		tr.Effects[0] = order.RecordShipment

		again, _ := table.Lookup(order.InStock, order.CompleteDelivery)
		assert.Equal(t, order.RevisePrices, again.Effects[0])
	})
}

func TestDefaultTransitionTable_Validate(t *testing.T) {
	report, err := order.DefaultTransitionTable().Validate()

	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]order.Status{order.SentToSupplier, order.ReceivedConforming, order.FinanciallyFinalized},
		report.Unreachable)
	assert.Equal(t, []order.Status{order.Delivered}, report.Terminal)
}

func TestNewTransitionTable(t *testing.T) {
	t.Run("should reject duplicated pairs", func(t *testing.T) {
		_, err := order.NewTransitionTable(
			order.Transition{From: order.Created, Trigger: order.SendToSupplier, To: order.AwaitingConfection},
			order.Transition{From: order.Created, Trigger: order.SendToSupplier, To: order.InStock},
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrTransitionTableIsInvalid)
		assert.ErrorIs(t, err, order.ErrTransitionIsDuplicated)
	})

	t.Run("should reject invalid statuses", func(t *testing.T) {
		_, err := order.NewTransitionTable(
			order.Transition{From: order.Unknown, Trigger: order.SendToSupplier, To: order.AwaitingConfection},
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrTransitionTableIsInvalid)
	})

	t.Run("should report unused triggers and unreachable states", func(t *testing.T) {
		table, err := order.NewTransitionTable(
			order.Transition{From: order.Created, Trigger: order.SendToSupplier, To: order.AwaitingConfection},
		)
		require.NoError(t, err)

		_, err = table.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrTriggerIsUnused)
		assert.ErrorIs(t, err, order.ErrStatusIsUnreachable)
		assert.Contains(t, err.Error(), "IN_STOCK")
	})

	t.Run("should return rows in declaration order", func(t *testing.T) {
		rows := order.DefaultTransitionTable().Transitions()

		require.Len(t, rows, 7)
		assert.Equal(t, order.SendToSupplier, rows[0].Trigger)
		assert.Equal(t, order.ReturnToConfection, rows[6].Trigger)
	})
}

func TestTransition_Has(t *testing.T) {
	tr, err := order.DefaultTransitionTable().Lookup(order.InStock, order.CompleteDelivery)
	require.NoError(t, err)

	assert.True(t, tr.Has(order.CreateFinanceEntry))
	assert.True(t, tr.Has(order.RevisePrices))
	assert.False(t, tr.Has(order.RecordShipment))
	assert.Equal(t, "IN_STOCK --COMPLETE_DELIVERY--> DELIVERED", tr.String())
}
