package objectstore

import (
	"context"
	"fmt"

	"textile/internal/core/ports"
	"textile/internal/pkg/errs"
)

// Inventory exposes the photos and shipment documents of a store by their
// public references.
type Inventory struct {
	store *Store
}

func NewInventory(store *Store) *Inventory {
	return &Inventory{store: store}
}

// List returns every photo and document in the bucket.
func (i *Inventory) List(ctx context.Context) ([]ports.StoredObject, error) {
	var stored []ports.StoredObject
	for _, prefix := range []string{photoPrefix, documentPrefix} {
		objects, err := i.store.List(ctx, prefix)
		if err != nil {
			return nil, err
		}
		for _, o := range objects {
			stored = append(stored, ports.StoredObject{Ref: i.store.PublicURL(o.Path), CreatedAt: o.CreatedAt})
		}
	}
	return stored, nil
}

// Remove deletes the objects behind refs. Nothing is removed if any reference
// points outside the bucket.
func (i *Inventory) Remove(ctx context.Context, refs []string) error {
	paths := make([]string, 0, len(refs))
	for _, ref := range refs {
		path, ok := i.store.PathOf(ref)
		if !ok {
			return errs.NewValueIsInvalidErrorWithCause("ref", fmt.Errorf("%q is not stored in this bucket", ref))
		}
		paths = append(paths, path)
	}
	return i.store.Remove(ctx, paths)
}
