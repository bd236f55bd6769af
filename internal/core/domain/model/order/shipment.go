package order

import (
	"errors"
	"strings"
	"time"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/errs"
)

// ErrShipmentIsNotConstructed is returned when a Shipment was not created through
// NewShipment or RestoreShipment.
var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

// MediumShared is the medium recorded when the shipment document is shared with the supplier.
const MediumShared = "SHARED"

// Shipment records one dispatch of an order to the supplier together with the
// generated document that went with it. Shipments are never mutated.
type Shipment struct {
	id          kernel.ID
	orderID     kernel.ID
	medium      string
	sentAt      time.Time
	documentRef string

	isConstructed bool
}

// NewShipment creates a shipment record. An empty medium defaults to MediumShared.
func NewShipment(id, orderID kernel.ID, medium, documentRef string, sentAt time.Time) (*Shipment, error) {
	medium = strings.TrimSpace(medium)
	if medium == "" {
		medium = MediumShared
	}

	if err := errors.Join(
		id.Validate(),
		requireOrderID(orderID),
		requireText("document_ref", documentRef),
	); err != nil {
		return nil, err
	}

	return &Shipment{
		id:            id,
		orderID:       orderID,
		medium:        strings.ToUpper(medium),
		sentAt:        sentAt.UTC(),
		documentRef:   documentRef,
		isConstructed: true,
	}, nil
}

// RestoreShipment rebuilds a shipment from persistence.
func RestoreShipment(id, orderID kernel.ID, medium, documentRef string, sentAt time.Time) (*Shipment, error) {
	return NewShipment(id, orderID, medium, documentRef, sentAt)
}

func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

func (s *Shipment) ID() kernel.ID       { return s.id }
func (s *Shipment) OrderID() kernel.ID  { return s.orderID }
func (s *Shipment) Medium() string      { return s.medium }
func (s *Shipment) SentAt() time.Time   { return s.sentAt }
func (s *Shipment) DocumentRef() string { return s.documentRef }

// Snapshot returns the serializable form used in audit records.
func (s *Shipment) Snapshot() ShipmentSnapshot {
	return ShipmentSnapshot{
		ID:          s.id.Int64(),
		Medium:      s.medium,
		SentAt:      s.sentAt,
		DocumentRef: s.documentRef,
	}
}

func requireOrderID(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order_id", err)
	}
	return nil
}
