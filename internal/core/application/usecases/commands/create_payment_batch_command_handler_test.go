package commands_test

import (
	"testing"

	"textile/internal/core/application/usecases/commands"
	"textile/internal/core/domain/model/audit"
	"textile/internal/core/domain/model/finance"
	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/services"
	"textile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCreatePaymentBatchCommand(t *testing.T) {
	_, err := commands.NewCreatePaymentBatchCommand(nil, "ana")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewCreatePaymentBatchCommand([]kernel.ID{{}}, "ana")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCreatePaymentBatchCommandHandler_Handle(t *testing.T) {
	t.Run("totals the cost and settles every entry", func(t *testing.T) {
		ctx := t.Context()
		ids := []kernel.ID{kernel.MustNewID(1), kernel.MustNewID(2)}
		cmd, err := commands.NewCreatePaymentBatchCommand(ids, "ana")
		require.NoError(t, err)

		first := unsettledEntry(t, 10, 1, "10.00", "25.00")
		second := unsettledEntry(t, 20, 2, "5.50", "9.00")
		batchID := kernel.MustNewID(100)

		uow := newMockUoW()
		uow.expectTx(ctx, true)
		mock.InOrder(
			uow.financeEntries.On("GetUnsettledForUpdate", mock.Anything, ids).
				Return([]*finance.Entry{first, second}, nil).Once(),
			uow.batches.On("NextID", mock.Anything).Return(batchID, nil).Once(),
			uow.batches.On("Add", mock.Anything, mock.MatchedBy(func(b *finance.PaymentBatch) bool {
				return b.Total().String() == "15.50"
			})).Return(nil).Once(),
			uow.financeEntries.On("Settle", mock.Anything, first).Return(nil).Once(),
			uow.financeEntries.On("Settle", mock.Anything, second).Return(nil).Once(),
			uow.audit.On("Append", mock.Anything, mock.MatchedBy(func(e *audit.Entry) bool {
				return e.Entity() == audit.EntityPaymentBatch && e.Action() == audit.ActionCreate
			})).Return(nil).Once(),
			uow.audit.On("Append", mock.Anything, auditAction(audit.ActionSettle, "batch_id")).Return(nil).Twice(),
		)

		h := commands.NewCreatePaymentBatchCommandHandler(settlementFactory{newFactory(uow)}, services.NewSettlement())
		batch, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, batchID, batch.ID())
		assert.Equal(t, "15.50", batch.Total().String())
		for _, e := range []*finance.Entry{first, second} {
			got, ok := e.BatchID()
			require.True(t, ok)
			assert.Equal(t, batchID, got)
		}
		uow.assertAll(t)
	})

	t.Run("writes nothing when an order has no unsettled entry", func(t *testing.T) {
		ctx := t.Context()
		ids := []kernel.ID{kernel.MustNewID(1), kernel.MustNewID(2)}
		cmd, err := commands.NewCreatePaymentBatchCommand(ids, "ana")
		require.NoError(t, err)

		uow := newMockUoW()
		uow.expectTx(ctx, false)
		uow.financeEntries.On("GetUnsettledForUpdate", mock.Anything, ids).
			Return([]*finance.Entry{unsettledEntry(t, 10, 1, "10.00", "25.00")}, nil).Once()
		uow.batches.On("NextID", mock.Anything).Return(kernel.MustNewID(100), nil).Once()

		h := commands.NewCreatePaymentBatchCommandHandler(settlementFactory{newFactory(uow)}, services.NewSettlement())
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, services.ErrOrderHasNoUnsettledEntry)
		assert.Contains(t, err.Error(), "2")
		uow.assertAll(t)
	})

	t.Run("loses to a concurrent settlement", func(t *testing.T) {
		ctx := t.Context()
		ids := []kernel.ID{kernel.MustNewID(1)}
		cmd, err := commands.NewCreatePaymentBatchCommand(ids, "ana")
		require.NoError(t, err)

		uow := newMockUoW()
		uow.expectTx(ctx, false)
		uow.financeEntries.On("GetUnsettledForUpdate", mock.Anything, ids).
			Return(nil, errs.NewConcurrencyConflictError("finance_entry", "1")).Once()

		h := commands.NewCreatePaymentBatchCommandHandler(settlementFactory{newFactory(uow)}, services.NewSettlement())
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrConcurrencyConflict)
		uow.assertAll(t)
	})
}
