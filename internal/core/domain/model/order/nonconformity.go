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

// ErrNonConformityIsNotConstructed is returned when a NonConformity was not created
// through NewNonConformity or RestoreNonConformity.
var ErrNonConformityIsNotConstructed = errors.New("NonConformity must be created via NewNonConformity constructor")

// NonConformityKind classifies what did not match the order.
type NonConformityKind string

const (
	KindMeasurement NonConformityKind = "MEASUREMENT"
	KindFabric      NonConformityKind = "FABRIC"
	KindColor       NonConformityKind = "COLOR"
	KindFinish      NonConformityKind = "FINISH"
	KindOther       NonConformityKind = "OTHER"
)

// AllNonConformityKinds returns the accepted kinds.
func AllNonConformityKinds() []NonConformityKind {
	return []NonConformityKind{KindMeasurement, KindFabric, KindColor, KindFinish, KindOther}
}

// Validate rejects empty or unknown kinds.
func (k NonConformityKind) Validate() error {
	if k == "" {
		return errs.NewValueIsRequiredError("kind")
	}
	if !slices.Contains(AllNonConformityKinds(), k) {
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a valid nonconformity kind", string(k)))
	}
	return nil
}

// NonConformityReport is the supplier-facing payload collected before an order is
// resent after a rejected delivery.
type NonConformityReport struct {
	Kind        NonConformityKind
	Description string
	Photos      Photos
	Count       int
}

// Validate requires a kind and a non-blank description.
func (r NonConformityReport) Validate() error {
	var countErr error
	if r.Count < 0 {
		countErr = errs.NewValueIsOutOfRangeError("count", r.Count, 1, "unbounded")
	}
	return errors.Join(
		r.Kind.Validate(),
		requireText("description", r.Description),
		r.Photos.Validate(),
		countErr,
	)
}

// NonConformity is the record of a rejected supplier delivery. It is written once
// and only read afterwards.
type NonConformity struct {
	id          kernel.ID
	orderID     kernel.ID
	kind        NonConformityKind
	description string
	photos      Photos
	count       int
	createdAt   time.Time

	isConstructed bool
}

// NewNonConformity creates a nonconformity from a validated report. A zero count
// is recorded as 1.
func NewNonConformity(id, orderID kernel.ID, report NonConformityReport, now time.Time) (*NonConformity, error) {
	if err := errors.Join(id.Validate(), requireOrderID(orderID), report.Validate()); err != nil {
		return nil, err
	}

	count := report.Count
	if count == 0 {
		count = 1
	}

	return &NonConformity{
		id:            id,
		orderID:       orderID,
		kind:          report.Kind,
		description:   strings.TrimSpace(report.Description),
		photos:        slices.Clone(report.Photos),
		count:         count,
		createdAt:     now.UTC(),
		isConstructed: true,
	}, nil
}

// RestoreNonConformity rebuilds a nonconformity from persistence.
func RestoreNonConformity(
	id, orderID kernel.ID,
	kind NonConformityKind,
	description string,
	photos Photos,
	count int,
	createdAt time.Time,
) (*NonConformity, error) {
	return NewNonConformity(id, orderID, NonConformityReport{
		Kind:        kind,
		Description: description,
		Photos:      photos,
		Count:       count,
	}, createdAt)
}

func (n *NonConformity) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNonConformityIsNotConstructed
	}
	return nil
}

func (n *NonConformity) ID() kernel.ID           { return n.id }
func (n *NonConformity) OrderID() kernel.ID      { return n.orderID }
func (n *NonConformity) Kind() NonConformityKind { return n.kind }
func (n *NonConformity) Description() string     { return n.description }
func (n *NonConformity) Photos() Photos          { return slices.Clone(n.photos) }
func (n *NonConformity) Count() int              { return n.count }
func (n *NonConformity) CreatedAt() time.Time    { return n.createdAt }

// Snapshot returns the serializable form used in audit records.
func (n *NonConformity) Snapshot() NonConformitySnapshot {
	return NonConformitySnapshot{
		ID:          n.id.Int64(),
		Kind:        string(n.kind),
		Description: n.description,
		Photos:      slices.Clone(n.photos),
		Count:       n.count,
		CreatedAt:   n.createdAt,
	}
}
