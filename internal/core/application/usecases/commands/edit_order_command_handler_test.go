package commands_test

import (
	"testing"

	"textile/internal/core/application/usecases/commands"
	"textile/internal/core/domain/model/audit"
	"textile/internal/core/domain/model/catalog"
	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/order"
	"textile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewEditOrderCommand(t *testing.T) {
	t.Run("requires at least one change", func(t *testing.T) {
		_, err := commands.NewEditOrderCommand(orderID, order.Edit{}, "ana")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects negative measurements", func(t *testing.T) {
		width := -1.0
		notes := order.StructuredNotes{Measurements: &order.Measurements{Width: &width}}
		_, err := commands.NewEditOrderCommand(orderID, order.Edit{Notes: &notes}, "ana")
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestEditOrderCommandHandler_Handle(t *testing.T) {
	t.Run("writes one UPDATE entry per changed field", func(t *testing.T) {
		ctx := t.Context()
		sale := kernel.MustMoney("30.00")
		sameCost := kernel.MustMoney("10.00")
		free := "rush"
		cmd, err := commands.NewEditOrderCommand(orderID,
			order.Edit{PriceCost: &sameCost, PriceSale: &sale, FreeNotes: &free}, "ana")
		require.NoError(t, err)

		uow := newMockUoW()
		uow.expectTx(ctx, true)
		mock.InOrder(
			uow.orders.On("GetForUpdate", mock.Anything, orderID).Return(orderIn(t, order.Created), nil).Once(),
			uow.orders.On("Update", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
			uow.audit.On("Append", mock.Anything, auditAction(audit.ActionUpdate, order.FieldPriceSale)).Return(nil).Once(),
			uow.audit.On("Append", mock.Anything, auditAction(audit.ActionUpdate, order.FieldFreeNotes)).Return(nil).Once(),
		)

		h := commands.NewEditOrderCommandHandler(orderFactory{newFactory(uow)})
		o, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "30.00", o.PriceSale().String())
		assert.Equal(t, "rush", o.FreeNotes())
		uow.assertAll(t)
	})

	t.Run("validates notes against the catalog", func(t *testing.T) {
		ctx := t.Context()
		notes := order.StructuredNotes{Color: "Purple"}
		cmd, err := commands.NewEditOrderCommand(orderID, order.Edit{Notes: &notes}, "ana")
		require.NoError(t, err)

		uow := newMockUoW()
		uow.expectTx(ctx, false)
		uow.catalog.On("Load", mock.Anything).Return(catalog.Default(), nil).Once()

		h := commands.NewEditOrderCommandHandler(orderFactory{newFactory(uow)})
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, catalog.ErrSelectionIsNotInCatalog)
		uow.assertAll(t)
	})

	t.Run("writes nothing when no value changed", func(t *testing.T) {
		ctx := t.Context()
		sameSale := kernel.MustMoney("25.00")
		cmd, err := commands.NewEditOrderCommand(orderID, order.Edit{PriceSale: &sameSale}, "ana")
		require.NoError(t, err)

		uow := newMockUoW()
		uow.expectTx(ctx, false)
		uow.orders.On("GetForUpdate", mock.Anything, orderID).Return(orderIn(t, order.Created), nil).Once()

		h := commands.NewEditOrderCommandHandler(orderFactory{newFactory(uow)})
		_, err = h.Handle(ctx, cmd)

		require.NoError(t, err)
		uow.assertAll(t)
	})

	t.Run("rejects edits after the order left CREATED", func(t *testing.T) {
		ctx := t.Context()
		sale := kernel.MustMoney("30.00")
		cmd, err := commands.NewEditOrderCommand(orderID, order.Edit{PriceSale: &sale}, "ana")
		require.NoError(t, err)

		uow := newMockUoW()
		uow.expectTx(ctx, false)
		uow.orders.On("GetForUpdate", mock.Anything, orderID).Return(orderIn(t, order.InStock), nil).Once()

		h := commands.NewEditOrderCommandHandler(orderFactory{newFactory(uow)})
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, order.ErrOrderIsNotEditable)
		uow.assertAll(t)
	})
}
