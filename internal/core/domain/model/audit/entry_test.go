package audit_test

import (
	"encoding/json"
	"testing"
	"time"

	"textile/internal/core/domain/model/audit"
	"textile/internal/core/domain/model/order"
	"textile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var recordedAt = time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)

func TestNewEntry(t *testing.T) {
	t.Run("should serialize status change", func(t *testing.T) {
		e, err := audit.NewEntry(audit.Record{
			Entity:   audit.EntityOrder,
			EntityID: "1",
			Action:   audit.ActionStatusUpdate,
			Field:    "status",
			Before:   "CREATED",
			After:    "AWAITING_CONFECTION",
		}, recordedAt)

		require.NoError(t, err)
		assert.Equal(t, `"CREATED"`, string(e.Before()))
		assert.Equal(t, `"AWAITING_CONFECTION"`, string(e.After()))
		assert.Equal(t, audit.DefaultActor, e.Actor())
		assert.Equal(t, recordedAt, e.Timestamp())
		assert.Zero(t, e.ID())
	})

	t.Run("should store nil as null", func(t *testing.T) {
		e, err := audit.NewEntry(audit.Record{
			Entity: audit.EntityOrder, EntityID: "1", Action: audit.ActionDelete,
			Before: map[string]any{"id": 1}, After: nil, Actor: "ana",
		}, recordedAt)

		require.NoError(t, err)
		assert.Nil(t, e.After())
		assert.Equal(t, "ana", e.Actor())
		assert.JSONEq(t, `{"id":1}`, string(e.Before()))
	})

	t.Run("should round-trip structured notes", func(t *testing.T) {
		var notes order.StructuredNotes
		require.NoError(t, json.Unmarshal(
			[]byte(`{"fabric":"Linen","measurements":{"width":2.2},"monogram":{"letters":"AB"}}`), &notes))

		e, err := audit.NewEntry(audit.Record{
			Entity: audit.EntityOrder, EntityID: "1", Action: audit.ActionUpdate,
			Field: "notes", After: notes,
		}, recordedAt)
		require.NoError(t, err)

		var decoded order.StructuredNotes
		require.NoError(t, e.DecodeAfter(&decoded))
		assert.True(t, notes.IsEqual(decoded))
		assert.Equal(t, `{"fabric":"Linen","measurements":{"width":2.2},"monogram":{"letters":"AB"}}`, string(e.After()))
	})

	t.Run("should require entity, id and action", func(t *testing.T) {
		_, err := audit.NewEntry(audit.Record{}, recordedAt)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "entity_id")
		assert.Contains(t, err.Error(), "action")
	})

	t.Run("should reject unserializable values", func(t *testing.T) {
		_, err := audit.NewEntry(audit.Record{
			Entity: audit.EntityOrder, EntityID: "1", Action: audit.ActionUpdate,
			Before: make(chan int),
		}, recordedAt)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRestoreEntry(t *testing.T) {
	e := audit.RestoreEntry(12, audit.EntityPaymentBatch, "3", audit.ActionCreate, "",
		json.RawMessage("null"), json.RawMessage(`{"total":"30.00"}`), "system", recordedAt)

	require.NoError(t, e.Validate())
	assert.Equal(t, int64(12), e.ID())
	assert.Nil(t, e.Before())

	var nothing map[string]any
	require.NoError(t, e.DecodeBefore(&nothing))
	assert.Nil(t, nothing)
}
