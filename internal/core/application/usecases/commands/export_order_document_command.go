package commands

import (
	"errors"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/guard"
)

var ErrExportOrderDocumentCommandIsNotConstructed = errors.New(
	"ExportOrderDocumentCommand must be created via NewExportOrderDocumentCommand constructor",
)

// ExportOrderDocumentCommand asks for a fresh document of an order.
type ExportOrderDocumentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID
	actor   string

	guard guard.ConstructorGuard
}

func NewExportOrderDocumentCommand(orderID kernel.ID, actor string) (ExportOrderDocumentCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ExportOrderDocumentCommand{}, err
	}

	return ExportOrderDocumentCommand{
		orderID: orderID,
		actor:   actorOrDefault(actor),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ExportOrderDocumentCommand) Validate() error {
	return c.guard.Validate(ErrExportOrderDocumentCommandIsNotConstructed)
}

func (c ExportOrderDocumentCommand) OrderID() kernel.ID { return c.orderID }
func (c ExportOrderDocumentCommand) Actor() string      { return c.actor }
