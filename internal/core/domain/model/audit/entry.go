package audit

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"textile/internal/pkg/errs"
)

// DefaultActor is recorded when a change is not attributed to an authenticated user.
const DefaultActor = "system"

// Entity kinds.
const (
	EntityOrder        = "order"
	EntityFinanceEntry = "finance_entry"
	EntityPaymentBatch = "payment_batch"
	EntityClient       = "client"
	EntityConfig       = "config"
	EntitySystem       = "system"
)

// Action tags what kind of change an entry records.
type Action string

const (
	ActionCreate       Action = "CREATE"
	ActionUpdate       Action = "UPDATE"
	ActionDelete       Action = "DELETE"
	ActionStatusUpdate Action = "STATUS_UPDATE"
	ActionPriceUpdate  Action = "PRICE_UPDATE"
	ActionSettle       Action = "SETTLE"
	ActionExportPDF    Action = "EXPORT_PDF"

	ActionOrphansRemoved Action = "ORPHANED_OBJECTS_DELETED"
)

// ErrEntryIsNotConstructed is returned when an Entry was not created through NewEntry
// or RestoreEntry.
var ErrEntryIsNotConstructed = errors.New("audit Entry must be created via NewEntry constructor")

// Record describes a change to be appended to the trail. Before and After are
// serialized with encoding/json; nil means "no value" and is stored as NULL.
type Record struct {
	Entity   string
	EntityID string
	Action   Action
	Field    string
	Before   any
	After    any
	Actor    string
}

// Entry is one immutable audit record.
type Entry struct {
	id       int64
	entity   string
	entityID string
	action   Action
	field    string
	before   json.RawMessage
	after    json.RawMessage
	actor    string
	ts       time.Time

	isConstructed bool
}

// NewEntry builds an entry from a record. The identifier is assigned by the store
// on insert.
//
// Returns:
//   - *Entry with serialized before/after values
//   - *errs.ValueIsRequiredError if entity, entity id or action is missing
//   - *errs.ValueIsInvalidError if a value cannot be serialized
func NewEntry(r Record, now time.Time) (*Entry, error) {
	before, beforeErr := encode("before", r.Before)
	after, afterErr := encode("after", r.After)

	if err := errors.Join(
		required("entity", r.Entity),
		required("entity_id", r.EntityID),
		required("action", string(r.Action)),
		beforeErr,
		afterErr,
	); err != nil {
		return nil, err
	}

	actor := strings.TrimSpace(r.Actor)
	if actor == "" {
		actor = DefaultActor
	}

	return &Entry{
		entity:        r.Entity,
		entityID:      r.EntityID,
		action:        r.Action,
		field:         r.Field,
		before:        before,
		after:         after,
		actor:         actor,
		ts:            now.UTC(),
		isConstructed: true,
	}, nil
}

// RestoreEntry rebuilds a persisted entry.
func RestoreEntry(
	id int64,
	entity, entityID string,
	action Action,
	field string,
	before, after json.RawMessage,
	actor string,
	ts time.Time,
) *Entry {
	return &Entry{
		id:            id,
		entity:        entity,
		entityID:      entityID,
		action:        action,
		field:         field,
		before:        normalize(before),
		after:         normalize(after),
		actor:         actor,
		ts:            ts.UTC(),
		isConstructed: true,
	}
}

func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

func (e *Entry) ID() int64               { return e.id }
func (e *Entry) Entity() string          { return e.entity }
func (e *Entry) EntityID() string        { return e.entityID }
func (e *Entry) Action() Action          { return e.action }
func (e *Entry) Field() string           { return e.field }
func (e *Entry) Before() json.RawMessage { return e.before }
func (e *Entry) After() json.RawMessage  { return e.after }
func (e *Entry) Actor() string           { return e.actor }
func (e *Entry) Timestamp() time.Time    { return e.ts }

// DecodeBefore unmarshals the before value into v. It is a no-op for NULL.
func (e *Entry) DecodeBefore(v any) error {
	return decode(e.before, v)
}

// DecodeAfter unmarshals the after value into v. It is a no-op for NULL.
func (e *Entry) DecodeAfter(v any) error {
	return decode(e.after, v)
}

func encode(name string, v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	if raw, ok := v.(json.RawMessage); ok {
		if !json.Valid(raw) {
			return nil, errs.NewValueIsInvalidErrorWithCause(name, errors.New("raw value is not valid JSON"))
		}
		return normalize(raw), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return normalize(b), nil
}

func decode(raw json.RawMessage, v any) error {
	if raw == nil {
		return nil
	}
	return json.Unmarshal(raw, v)
}

// normalize maps a JSON null to a nil message so "no value" has one representation.
func normalize(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return raw
}

func required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
