package commands

import (
	"errors"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/order"
	"textile/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents the intake of a new customer order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(clientID,
//	    order.Selection{Category: "Bed sheet", Type: "Queen", Product: "4 pieces"},
//	    kernel.MustMoney("10.00"), kernel.MustMoney("25.00"),
//	    order.Details{Notes: order.StructuredNotes{Fabric: "Percale"}},
//	    "ana")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	id, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	clientID  kernel.ID
	selection order.Selection
	priceCost kernel.Money
	priceSale kernel.Money
	details   order.Details
	actor     string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand checks the shape of the request. Catalog membership and the
// client's existence are checked by the handler inside the transaction.
func NewCreateOrderCommand(
	clientID kernel.ID,
	selection order.Selection,
	priceCost, priceSale kernel.Money,
	details order.Details,
	actor string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		priceCost: priceCost,
		priceSale: priceSale,
		actor:     actorOrDefault(actor),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setClientID(clientID),
		cmd.setSelection(selection),
		cmd.setDetails(details),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) ClientID() kernel.ID        { return c.clientID }
func (c CreateOrderCommand) Selection() order.Selection { return c.selection }
func (c CreateOrderCommand) PriceCost() kernel.Money    { return c.priceCost }
func (c CreateOrderCommand) PriceSale() kernel.Money    { return c.priceSale }
func (c CreateOrderCommand) Details() order.Details     { return c.details }
func (c CreateOrderCommand) Actor() string              { return c.actor }

func (c *CreateOrderCommand) setClientID(clientID kernel.ID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}
	c.clientID = clientID
	return nil
}

func (c *CreateOrderCommand) setSelection(selection order.Selection) error {
	if err := selection.Validate(); err != nil {
		return err
	}
	c.selection = selection
	return nil
}

func (c *CreateOrderCommand) setDetails(details order.Details) error {
	if err := errors.Join(details.Notes.Validate(), details.Photos.Validate()); err != nil {
		return err
	}
	c.details = details
	return nil
}
