package order

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"

	"textile/internal/pkg/errs"
)

const (
	notesKeyFabric       = "fabric"
	notesKeyColor        = "color"
	notesKeyFinish       = "finish"
	notesKeyMeasurements = "measurements"
)

// Measurements are the optional made-to-measure dimensions, in centimeters.
type Measurements struct {
	Width   *float64 `json:"width,omitempty"`
	Height  *float64 `json:"height,omitempty"`
	Depth   *float64 `json:"depth,omitempty"`
	Details string   `json:"details,omitempty"`
}

func (m *Measurements) isEmpty() bool {
	return m == nil || (m.Width == nil && m.Height == nil && m.Depth == nil && m.Details == "")
}

func (m *Measurements) validate() error {
	if m == nil {
		return nil
	}
	for name, v := range map[string]*float64{"width": m.Width, "height": m.Height, "depth": m.Depth} {
		if v != nil && *v < 0 {
			return errs.NewValueIsOutOfRangeError("measurements."+name, *v, 0, "unbounded")
		}
	}
	return nil
}

// StructuredNotes are the production attributes of an order.
//
// Fabric, Color, Finish and Measurements are the known fields. Any other key found in
// a serialized document is kept in Extra as compact JSON, so documents written by newer
// versions survive a read-modify-write cycle unchanged.
//
// Serialization is canonical: keys are sorted and empty known fields are omitted, so
// marshaling the result of unmarshaling always reproduces the same bytes.
type StructuredNotes struct {
	Fabric       string
	Color        string
	Finish       string
	Measurements *Measurements
	Extra        map[string]json.RawMessage
}

// Validate checks measurement bounds and that extension keys do not shadow known fields.
func (n StructuredNotes) Validate() error {
	if err := n.Measurements.validate(); err != nil {
		return err
	}
	for key, raw := range n.Extra {
		if isKnownNotesKey(key) {
			return errs.NewValueIsInvalidErrorWithCause("notes", fmt.Errorf("extension key %q is reserved", key))
		}
		if !json.Valid(raw) {
			return errs.NewValueIsInvalidErrorWithCause("notes", fmt.Errorf("extension %q is not valid JSON", key))
		}
	}
	return nil
}

// IsEqual compares two notes by their canonical encoding.
func (n StructuredNotes) IsEqual(other StructuredNotes) bool {
	a, errA := json.Marshal(n)
	b, errB := json.Marshal(other)
	return errA == nil && errB == nil && bytes.Equal(a, b)
}

// WithExtra returns a copy of the notes with an extension value set.
func (n StructuredNotes) WithExtra(key string, value any) (StructuredNotes, error) {
	if isKnownNotesKey(key) {
		return n, errs.NewValueIsInvalidErrorWithCause("notes", fmt.Errorf("extension key %q is reserved", key))
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return n, errs.NewValueIsInvalidErrorWithCause("notes", err)
	}

	out := n
	out.Extra = maps.Clone(n.Extra)
	if out.Extra == nil {
		out.Extra = make(map[string]json.RawMessage)
	}
	out.Extra[key] = raw
	return out, nil
}

func (n StructuredNotes) MarshalJSON() ([]byte, error) {
	doc := make(map[string]json.RawMessage, len(n.Extra)+4)
	for key, raw := range n.Extra {
		var compact bytes.Buffer
		if err := json.Compact(&compact, raw); err != nil {
			return nil, fmt.Errorf("notes extension %q: %w", key, err)
		}
		doc[key] = compact.Bytes()
	}

	for key, value := range map[string]string{
		notesKeyFabric: n.Fabric,
		notesKeyColor:  n.Color,
		notesKeyFinish: n.Finish,
	} {
		if value == "" {
			continue
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		doc[key] = raw
	}

	if !n.Measurements.isEmpty() {
		raw, err := json.Marshal(n.Measurements)
		if err != nil {
			return nil, err
		}
		doc[notesKeyMeasurements] = raw
	}

	// map keys are emitted sorted
	return json.Marshal(doc)
}

func (n *StructuredNotes) UnmarshalJSON(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	out := StructuredNotes{}
	for key, raw := range doc {
		var err error
		switch key {
		case notesKeyFabric:
			err = json.Unmarshal(raw, &out.Fabric)
		case notesKeyColor:
			err = json.Unmarshal(raw, &out.Color)
		case notesKeyFinish:
			err = json.Unmarshal(raw, &out.Finish)
		case notesKeyMeasurements:
			var m Measurements
			if err = json.Unmarshal(raw, &m); err == nil && !m.isEmpty() {
				out.Measurements = &m
			}
		default:
			var compact bytes.Buffer
			if err = json.Compact(&compact, raw); err == nil {
				if out.Extra == nil {
					out.Extra = make(map[string]json.RawMessage)
				}
				out.Extra[key] = compact.Bytes()
			}
		}
		if err != nil {
			return fmt.Errorf("notes field %q: %w", key, err)
		}
	}

	*n = out
	return nil
}

func isKnownNotesKey(key string) bool {
	switch key {
	case notesKeyFabric, notesKeyColor, notesKeyFinish, notesKeyMeasurements:
		return true
	default:
		return false
	}
}
