package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderIsNotEditable is returned when pricing or notes are edited outside CREATED.
	ErrOrderIsNotEditable = errors.New("order can only be edited while CREATED")
)

// Field names used in change records and audit entries.
const (
	FieldStatus    = "status"
	FieldPriceCost = "price_cost"
	FieldPriceSale = "price_sale"
	FieldNotes     = "notes"
	FieldFreeNotes = "free_notes"
)

// Selection is the catalog choice made at intake: category, type and product.
type Selection struct {
	Category string
	Type     string
	Product  string
}

// Validate requires all three levels to be present.
func (s Selection) Validate() error {
	return errors.Join(
		requireText("category", s.Category),
		requireText("type", s.Type),
		requireText("product", s.Product),
	)
}

// Photos is an ordered list of opaque references returned by the photo store.
type Photos []string

// Validate rejects blank references.
func (p Photos) Validate() error {
	for i, ref := range p {
		if strings.TrimSpace(ref) == "" {
			return errs.NewValueIsRequiredErrorWithCause("photos", fmt.Errorf("reference %d is blank", i))
		}
	}
	return nil
}

// Details groups the descriptive, editable parts of an order.
type Details struct {
	Notes     StructuredNotes
	FreeNotes string
	Photos    Photos
}

// FieldChange records one field that changed value. Before and After hold the
// values as they should appear in the audit trail.
type FieldChange struct {
	Field  string
	Before any
	After  any
}

// Edit lists the optional changes accepted while an order is CREATED.
// Nil members are left untouched.
type Edit struct {
	PriceCost *kernel.Money
	PriceSale *kernel.Money
	Notes     *StructuredNotes
	FreeNotes *string
}

// Order is the aggregate root for one customer order moving through the production
// lifecycle.
//
// Order follows these invariants:
//   - id and clientID are valid identifiers
//   - the catalog selection is complete and never changes
//   - priceCost and priceSale are present and not negative
//   - status is always a declared Status and changes only through Apply
//   - updatedAt is never before createdAt
type Order struct {
	// id is the identifier reserved from the orders sequence
	id kernel.ID

	// clientID references the ordering client
	clientID kernel.ID

	// selection is the catalog category, type and product
	selection Selection

	priceCost kernel.Money
	priceSale kernel.Money
	details   Details

	// status represents the current state in the order lifecycle
	status Status

	createdAt time.Time
	updatedAt time.Time

	// version is the optimistic concurrency token loaded with the order
	version int

	// isConstructed ensures the order was created via NewOrder or RestoreOrder
	isConstructed bool
}

// NewOrder creates an order at intake. The order starts in Created status at
// version 1 with createdAt and updatedAt both set to now.
//
// Parameters:
//   - id: identifier reserved from the orders sequence
//   - clientID: the ordering client
//   - selection: catalog category, type and product
//   - priceCost, priceSale: agreed prices
//   - details: structured notes, free notes and photo references
//   - now: intake time
//
// Returns:
//   - *Order: the created order if all validations pass
//   - error: every validation failure joined together
//
// Example:
//
//	o, err := order.NewOrder(id, clientID,
//	    order.Selection{Category: "Bed sheet", Type: "Queen", Product: "4 pieces"},
//	    kernel.MustMoney("10.00"), kernel.MustMoney("25.00"),
//	    order.Details{Notes: order.StructuredNotes{Fabric: "Percale"}},
//	    time.Now())
func NewOrder(
	id, clientID kernel.ID,
	selection Selection,
	priceCost, priceSale kernel.Money,
	details Details,
	now time.Time,
) (*Order, error) {
	now = now.UTC()
	o := &Order{
		priceCost:     priceCost,
		priceSale:     priceSale,
		status:        Created,
		createdAt:     now,
		updatedAt:     now,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setClientID(clientID),
		o.setSelection(selection),
		o.setDetails(details),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persistence without re-running intake rules.
//
// Returns an error when persisted state violates an invariant (invalid status,
// identifiers, or updatedAt before createdAt).
func RestoreOrder(
	id, clientID kernel.ID,
	selection Selection,
	priceCost, priceSale kernel.Money,
	details Details,
	status Status,
	createdAt, updatedAt time.Time,
	version int,
) (*Order, error) {
	o := &Order{
		priceCost:     priceCost,
		priceSale:     priceSale,
		status:        status,
		createdAt:     createdAt.UTC(),
		updatedAt:     updatedAt.UTC(),
		version:       version,
		isConstructed: true,
	}

	var timeErr error
	if o.updatedAt.Before(o.createdAt) {
		timeErr = errs.NewValueIsInvalidErrorWithCause("updated_at",
			fmt.Errorf("%s is before created_at %s", o.updatedAt, o.createdAt))
	}

	if err := errors.Join(
		o.setID(id),
		o.setClientID(clientID),
		o.setSelection(selection),
		o.setDetails(details),
		status.Validate(),
		timeErr,
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.ID           { return o.id }
func (o *Order) ClientID() kernel.ID     { return o.clientID }
func (o *Order) Selection() Selection    { return o.selection }
func (o *Order) PriceCost() kernel.Money { return o.priceCost }
func (o *Order) PriceSale() kernel.Money { return o.priceSale }
func (o *Order) Notes() StructuredNotes  { return o.details.Notes }
func (o *Order) FreeNotes() string       { return o.details.FreeNotes }
func (o *Order) Photos() Photos          { return slices.Clone(o.details.Photos) }
func (o *Order) Status() Status          { return o.status }
func (o *Order) CreatedAt() time.Time    { return o.createdAt }
func (o *Order) UpdatedAt() time.Time    { return o.updatedAt }
func (o *Order) Version() int            { return o.version }

// Details returns a copy of the editable descriptive fields.
func (o *Order) Details() Details {
	d := o.details
	d.Photos = slices.Clone(d.Photos)
	return d
}

// Apply moves the order along a transition looked up in the table.
//
// The transition must start at the current status; this catches a transition
// looked up against a stale copy of the order.
//
// Returns:
//   - FieldChange for the status field on success
//   - *errs.ValueIsInvalidError if the transition does not start at the current status
func (o *Order) Apply(transition Transition, now time.Time) (FieldChange, error) {
	if transition.From != o.status {
		return FieldChange{}, errs.NewValueIsInvalidErrorWithCause(
			"transition",
			fmt.Errorf("%w: %s while order is %s", ErrTransitionIsNotAllowed, transition, o.status),
		)
	}
	if err := transition.To.Validate(); err != nil {
		return FieldChange{}, err
	}

	change := FieldChange{Field: FieldStatus, Before: o.status.String(), After: transition.To.String()}
	o.status = transition.To
	o.touch(now)
	return change, nil
}

// Edit changes pricing and notes of a CREATED order.
//
// Returns one FieldChange per field whose value actually changed, in a fixed
// order: price_cost, price_sale, notes, free_notes. Returns ErrOrderIsNotEditable
// outside Created.
func (o *Order) Edit(edit Edit, now time.Time) ([]FieldChange, error) {
	if o.status != Created {
		return nil, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%w: order is %s", ErrOrderIsNotEditable, o.status))
	}

	if edit.Notes != nil {
		if err := edit.Notes.Validate(); err != nil {
			return nil, err
		}
	}

	changes := o.applyPrices(edit.PriceCost, edit.PriceSale)

	if edit.Notes != nil && !edit.Notes.IsEqual(o.details.Notes) {
		changes = append(changes, FieldChange{Field: FieldNotes, Before: o.details.Notes, After: *edit.Notes})
		o.details.Notes = *edit.Notes
	}

	if edit.FreeNotes != nil && *edit.FreeNotes != o.details.FreeNotes {
		changes = append(changes, FieldChange{Field: FieldFreeNotes, Before: o.details.FreeNotes, After: *edit.FreeNotes})
		o.details.FreeNotes = *edit.FreeNotes
	}

	if len(changes) > 0 {
		o.touch(now)
	}
	return changes, nil
}

// RevisePrices applies last-minute price revisions before delivery.
// Only allowed while the order is InStock.
//
// Returns one FieldChange per price that actually changed.
func (o *Order) RevisePrices(priceCost, priceSale *kernel.Money, now time.Time) ([]FieldChange, error) {
	if o.status != InStock {
		return nil, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("prices can only be revised while %s, order is %s", InStock, o.status))
	}

	changes := o.applyPrices(priceCost, priceSale)
	if len(changes) > 0 {
		o.touch(now)
	}
	return changes, nil
}

// Snapshot returns a serializable copy of the order for audit records and documents.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:        o.id.Int64(),
		ClientID:  o.clientID.Int64(),
		Category:  o.selection.Category,
		Type:      o.selection.Type,
		Product:   o.selection.Product,
		PriceCost: o.priceCost.String(),
		PriceSale: o.priceSale.String(),
		Notes:     o.details.Notes,
		FreeNotes: o.details.FreeNotes,
		Photos:    slices.Clone(o.details.Photos),
		Status:    o.status.String(),
		CreatedAt: o.createdAt,
		UpdatedAt: o.updatedAt,
	}
}

func (o *Order) applyPrices(priceCost, priceSale *kernel.Money) []FieldChange {
	var changes []FieldChange
	if priceCost != nil && !priceCost.IsEqual(o.priceCost) {
		changes = append(changes, FieldChange{Field: FieldPriceCost, Before: o.priceCost.String(), After: priceCost.String()})
		o.priceCost = *priceCost
	}
	if priceSale != nil && !priceSale.IsEqual(o.priceSale) {
		changes = append(changes, FieldChange{Field: FieldPriceSale, Before: o.priceSale.String(), After: priceSale.String()})
		o.priceSale = *priceSale
	}
	return changes
}

func (o *Order) touch(now time.Time) {
	now = now.UTC()
	if now.Before(o.createdAt) {
		now = o.createdAt
	}
	o.updatedAt = now
}

func (o *Order) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setClientID(clientID kernel.ID) error {
	if err := clientID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("client_id", err)
	}
	o.clientID = clientID
	return nil
}

func (o *Order) setSelection(selection Selection) error {
	if err := selection.Validate(); err != nil {
		return err
	}
	o.selection = selection
	return nil
}

func (o *Order) setDetails(details Details) error {
	if err := errors.Join(details.Notes.Validate(), details.Photos.Validate()); err != nil {
		return err
	}
	o.details = details
	o.details.Photos = slices.Clone(details.Photos)
	return nil
}

func requireText(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
