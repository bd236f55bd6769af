package commands

import (
	"errors"
	"slices"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/errs"
	"textile/internal/pkg/guard"
)

var ErrCreatePaymentBatchCommandIsNotConstructed = errors.New(
	"CreatePaymentBatchCommand must be created via NewCreatePaymentBatchCommand constructor",
)

// CreatePaymentBatchCommand settles the unsettled entries of the selected orders.
type CreatePaymentBatchCommand struct { //nolint:recvcheck //using for validation
	orderIDs []kernel.ID
	actor    string

	guard guard.ConstructorGuard
}

// NewCreatePaymentBatchCommand requires a non-empty selection of valid ids.
func NewCreatePaymentBatchCommand(orderIDs []kernel.ID, actor string) (CreatePaymentBatchCommand, error) {
	if len(orderIDs) == 0 {
		return CreatePaymentBatchCommand{}, errs.NewValueIsRequiredError("order_ids")
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return CreatePaymentBatchCommand{}, errs.NewValueIsInvalidErrorWithCause("order_ids", err)
		}
	}

	return CreatePaymentBatchCommand{
		orderIDs: slices.Clone(orderIDs),
		actor:    actorOrDefault(actor),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreatePaymentBatchCommand) Validate() error {
	return c.guard.Validate(ErrCreatePaymentBatchCommandIsNotConstructed)
}

func (c CreatePaymentBatchCommand) OrderIDs() []kernel.ID { return slices.Clone(c.orderIDs) }
func (c CreatePaymentBatchCommand) Actor() string         { return c.actor }
