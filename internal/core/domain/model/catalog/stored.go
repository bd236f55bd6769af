package catalog

import (
	"encoding/json"
	"fmt"

	"textile/internal/pkg/errs"
)

// Keys returns the config keys that make up a catalog.
func Keys() []string {
	return []string{KeyProductHierarchy, KeyFabrics, KeyColors, KeyFinishes}
}

// FromStored decodes a catalog from its serialized config values. A key that is
// absent takes the value of Default.
func FromStored(stored map[string][]byte) (*Catalog, error) {
	var (
		hierarchy                 Hierarchy
		fabrics, colors, finishes []string
	)

	for key, target := range map[string]any{
		KeyProductHierarchy: &hierarchy,
		KeyFabrics:          &fabrics,
		KeyColors:           &colors,
		KeyFinishes:         &finishes,
	} {
		raw, ok := stored[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(key, fmt.Errorf("stored value is malformed: %w", err))
		}
	}

	defaults := Default()
	if _, ok := stored[KeyProductHierarchy]; !ok {
		hierarchy = defaults.Hierarchy()
	}
	if _, ok := stored[KeyFabrics]; !ok {
		fabrics = defaults.Fabrics()
	}
	if _, ok := stored[KeyColors]; !ok {
		colors = defaults.Colors()
	}
	if _, ok := stored[KeyFinishes]; !ok {
		finishes = defaults.Finishes()
	}

	return NewCatalog(hierarchy, fabrics, colors, finishes)
}
