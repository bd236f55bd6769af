package ports

import (
	"context"

	"textile/internal/core/domain/model/catalog"
	"textile/internal/core/domain/model/client"
	"textile/internal/core/domain/model/kernel"
)

// ClientRepository stores client reference records.
type ClientRepository interface {
	NextID(ctx context.Context) (kernel.ID, error)
	Add(ctx context.Context, c *client.Client) error
	Get(ctx context.Context, id kernel.ID) (*client.Client, error)
}

// CatalogRepository reads and writes the catalog in the config store.
type CatalogRepository interface {
	// Load returns the stored catalog. Missing keys are seeded with catalog.Default
	// values and written back in the same transaction.
	Load(ctx context.Context) (*catalog.Catalog, error)

	// Save replaces every catalog key.
	Save(ctx context.Context, c *catalog.Catalog) error
}

// ObjectReferences reads every object reference held by the store: order and
// nonconformity photos, shipment documents and exported documents.
type ObjectReferences interface {
	Referenced(ctx context.Context) ([]string, error)
}
