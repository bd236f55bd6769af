package commands

import (
	"errors"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/order"
	"textile/internal/pkg/errs"
	"textile/internal/pkg/guard"
)

var ErrEditOrderCommandIsNotConstructed = errors.New(
	"EditOrderCommand must be created via NewEditOrderCommand constructor",
)

// EditOrderCommand changes pricing and notes of an order that was not sent yet.
// Only the non-nil members of the edit are applied.
type EditOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID
	edit    order.Edit
	actor   string

	guard guard.ConstructorGuard
}

func NewEditOrderCommand(orderID kernel.ID, edit order.Edit, actor string) (EditOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return EditOrderCommand{}, err
	}
	if edit.PriceCost == nil && edit.PriceSale == nil && edit.Notes == nil && edit.FreeNotes == nil {
		return EditOrderCommand{}, errs.NewValueIsRequiredError("changes")
	}
	if edit.Notes != nil {
		if err := edit.Notes.Validate(); err != nil {
			return EditOrderCommand{}, err
		}
	}

	return EditOrderCommand{
		orderID: orderID,
		edit:    edit,
		actor:   actorOrDefault(actor),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c EditOrderCommand) Validate() error {
	return c.guard.Validate(ErrEditOrderCommandIsNotConstructed)
}

func (c EditOrderCommand) OrderID() kernel.ID { return c.orderID }
func (c EditOrderCommand) Edit() order.Edit   { return c.edit }
func (c EditOrderCommand) Actor() string      { return c.actor }
