package commands

import (
	"errors"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/guard"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand removes an order that never produced a finance entry.
type DeleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID
	actor   string

	guard guard.ConstructorGuard
}

func NewDeleteOrderCommand(orderID kernel.ID, actor string) (DeleteOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return DeleteOrderCommand{}, err
	}

	return DeleteOrderCommand{
		orderID: orderID,
		actor:   actorOrDefault(actor),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

func (c DeleteOrderCommand) OrderID() kernel.ID { return c.orderID }
func (c DeleteOrderCommand) Actor() string      { return c.actor }
