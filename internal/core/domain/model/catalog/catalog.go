// Package catalog provides the product hierarchy and attribute lists that order
// intake is validated against.
//
// The catalog is reference data kept in the config store under one key per part:
//   - product_hierarchy: category -> type -> products
//   - fabrics, colors, finishes: independent attribute lists
package catalog

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"textile/internal/pkg/errs"
)

// Config keys.
const (
	KeyProductHierarchy = "product_hierarchy"
	KeyFabrics          = "fabrics"
	KeyColors           = "colors"
	KeyFinishes         = "finishes"
)

var ErrSelectionIsNotInCatalog = errors.New("selection is not in the catalog")

// Hierarchy maps category -> type -> products.
type Hierarchy map[string]map[string][]string

// Catalog is an immutable view of the configured catalog.
type Catalog struct {
	hierarchy Hierarchy
	fabrics   []string
	colors    []string
	finishes  []string
}

// NewCatalog validates and copies the catalog parts. Blank names are rejected at
// every level.
func NewCatalog(hierarchy Hierarchy, fabrics, colors, finishes []string) (*Catalog, error) {
	if err := errors.Join(
		validateHierarchy(hierarchy),
		validateList(KeyFabrics, fabrics),
		validateList(KeyColors, colors),
		validateList(KeyFinishes, finishes),
	); err != nil {
		return nil, err
	}

	return &Catalog{
		hierarchy: cloneHierarchy(hierarchy),
		fabrics:   slices.Clone(fabrics),
		colors:    slices.Clone(colors),
		finishes:  slices.Clone(finishes),
	}, nil
}

// Default returns the catalog seeded into an empty config store.
func Default() *Catalog {
	c, err := NewCatalog(
		Hierarchy{
			"Bed sheet": {
				"Single": {"3 pieces", "4 pieces"},
				"Double": {"3 pieces", "4 pieces", "5 pieces"},
				"Queen":  {"4 pieces", "5 pieces"},
				"King":   {"5 pieces", "Full set"},
			},
			"Towel": {
				"Bath": {"Plain", "Embroidered"},
				"Face": {"Plain", "Embroidered"},
			},
		},
		[]string{"Cotton", "Percale", "Satin", "Microfiber", "Linen"},
		[]string{"White", "Beige", "Blue", "Pink", "Grey", "Multicolor"},
		[]string{"Embroidery", "Lace", "Ruffle", "Plain", "Printed"},
	)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Hierarchy() Hierarchy { return cloneHierarchy(c.hierarchy) }
func (c *Catalog) Fabrics() []string    { return slices.Clone(c.fabrics) }
func (c *Catalog) Colors() []string     { return slices.Clone(c.colors) }
func (c *Catalog) Finishes() []string   { return slices.Clone(c.finishes) }

// Values returns the catalog as config key -> value, ready to be serialized.
func (c *Catalog) Values() map[string]any {
	return map[string]any{
		KeyProductHierarchy: c.Hierarchy(),
		KeyFabrics:          c.Fabrics(),
		KeyColors:           c.Colors(),
		KeyFinishes:         c.Finishes(),
	}
}

// ValidateSelection checks that category, type and product exist in the hierarchy.
func (c *Catalog) ValidateSelection(category, typ, product string) error {
	types, ok := c.hierarchy[category]
	if !ok {
		return notInCatalog("category", "category %q", category)
	}
	products, ok := types[typ]
	if !ok {
		return notInCatalog("type", "type %q in %q", typ, category)
	}
	if !slices.Contains(products, product) {
		return notInCatalog("product", "product %q in %q/%q", product, category, typ)
	}
	return nil
}

// ValidateAttributes checks that the non-empty attributes are listed in the catalog.
func (c *Catalog) ValidateAttributes(fabric, color, finish string) error {
	var problems []error
	for _, attr := range []struct {
		key, value string
		list       []string
	}{
		{KeyFabrics, fabric, c.fabrics},
		{KeyColors, color, c.colors},
		{KeyFinishes, finish, c.finishes},
	} {
		if attr.value != "" && !slices.Contains(attr.list, attr.value) {
			problems = append(problems, notInCatalog(attr.key, "%q", attr.value))
		}
	}
	return errors.Join(problems...)
}

func notInCatalog(param, format string, args ...any) error {
	return errs.NewValueIsInvalidErrorWithCause(param,
		fmt.Errorf("%w: "+format, append([]any{ErrSelectionIsNotInCatalog}, args...)...))
}

func validateHierarchy(h Hierarchy) error {
	if len(h) == 0 {
		return errs.NewValueIsRequiredError(KeyProductHierarchy)
	}
	for category, types := range h {
		if strings.TrimSpace(category) == "" {
			return errs.NewValueIsInvalidErrorWithCause(KeyProductHierarchy, errors.New("blank category"))
		}
		for typ, products := range types {
			if strings.TrimSpace(typ) == "" {
				return errs.NewValueIsInvalidErrorWithCause(KeyProductHierarchy,
					fmt.Errorf("blank type in %q", category))
			}
			if err := validateList(KeyProductHierarchy, products); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateList(key string, items []string) error {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			return errs.NewValueIsInvalidErrorWithCause(key, errors.New("blank item"))
		}
		if seen[item] {
			return errs.NewValueIsInvalidErrorWithCause(key, fmt.Errorf("%q is listed twice", item))
		}
		seen[item] = true
	}
	return nil
}

func cloneHierarchy(h Hierarchy) Hierarchy {
	out := make(Hierarchy, len(h))
	for category, types := range h {
		inner := make(map[string][]string, len(types))
		for typ, products := range types {
			inner[typ] = slices.Clone(products)
		}
		out[category] = inner
	}
	return out
}

// Categories returns the category names in sorted order.
func (c *Catalog) Categories() []string {
	return slices.Sorted(maps.Keys(c.hierarchy))
}
