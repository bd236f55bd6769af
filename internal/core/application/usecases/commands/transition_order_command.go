package commands

import (
	"errors"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/order"
	"textile/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// PriceRevision carries optional last-minute price changes for delivery.
type PriceRevision struct {
	PriceCost *kernel.Money
	PriceSale *kernel.Money
}

// TransitionOrderCommand asks to fire a trigger on an order.
//
// The optional payloads must match the transition: a price revision is only
// accepted with COMPLETE_DELIVERY and a nonconformity report is required by (and
// only accepted with) RESEND_AFTER_NONCONFORMITY. The handler checks this against
// the transition table.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.ID
	trigger       order.Trigger
	revision      *PriceRevision
	nonConformity *order.NonConformityReport
	medium        string
	actor         string

	guard guard.ConstructorGuard
}

// TransitionOption sets an optional payload of a TransitionOrderCommand.
type TransitionOption func(*TransitionOrderCommand)

// WithPriceRevision attaches price revisions. A revision with both prices nil is ignored.
func WithPriceRevision(revision PriceRevision) TransitionOption {
	return func(c *TransitionOrderCommand) {
		if revision.PriceCost == nil && revision.PriceSale == nil {
			return
		}
		c.revision = &revision
	}
}

// WithNonConformity attaches the report needed to resend a rejected order.
func WithNonConformity(report order.NonConformityReport) TransitionOption {
	return func(c *TransitionOrderCommand) {
		c.nonConformity = &report
	}
}

// WithShipmentMedium sets the medium recorded on the shipment. Defaults to SHARED.
func WithShipmentMedium(medium string) TransitionOption {
	return func(c *TransitionOrderCommand) {
		c.medium = medium
	}
}

// NewTransitionOrderCommand validates identifiers, the trigger and any attached
// nonconformity report.
//
// Example:
//
//	cmd, err := NewTransitionOrderCommand(orderID, order.CompleteDelivery, "ana",
//	    WithPriceRevision(PriceRevision{PriceSale: &newSale}))
func NewTransitionOrderCommand(
	orderID kernel.ID,
	trigger order.Trigger,
	actor string,
	opts ...TransitionOption,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		orderID: orderID,
		trigger: trigger,
		actor:   actorOrDefault(actor),
		guard:   guard.NewConstructorGuard(),
	}
	for _, opt := range opts {
		opt(&cmd)
	}

	var reportErr error
	if cmd.nonConformity != nil {
		reportErr = cmd.nonConformity.Validate()
	}

	if err := errors.Join(orderID.Validate(), trigger.Validate(), reportErr); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) OrderID() kernel.ID     { return c.orderID }
func (c TransitionOrderCommand) Trigger() order.Trigger { return c.trigger }
func (c TransitionOrderCommand) Medium() string         { return c.medium }
func (c TransitionOrderCommand) Actor() string          { return c.actor }

// PriceRevision returns the attached revision, if any.
func (c TransitionOrderCommand) PriceRevision() (PriceRevision, bool) {
	if c.revision == nil {
		return PriceRevision{}, false
	}
	return *c.revision, true
}

// NonConformity returns the attached report, if any.
func (c TransitionOrderCommand) NonConformity() (order.NonConformityReport, bool) {
	if c.nonConformity == nil {
		return order.NonConformityReport{}, false
	}
	return *c.nonConformity, true
}
