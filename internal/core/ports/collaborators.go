package ports

import (
	"context"
	"io"
	"time"

	"textile/internal/core/domain/model/order"
)

// PhotoStore uploads images and returns an opaque reference (a public URL) that is
// stored on orders and nonconformities as is.
type PhotoStore interface {
	Upload(ctx context.Context, fileName, contentType string, content io.Reader) (string, error)
}

// DocumentGenerator renders the shipment document for an order snapshot, stores it
// and returns a reference to the stored file.
type DocumentGenerator interface {
	Generate(ctx context.Context, snapshot order.Snapshot) (string, error)
}

// StoredObject is one file kept in object storage. CreatedAt is zero when the
// storage did not report it.
type StoredObject struct {
	Ref       string
	CreatedAt time.Time
}

// ObjectInventory lists the photos and documents the service has stored and removes
// them by reference.
type ObjectInventory interface {
	List(ctx context.Context) ([]StoredObject, error)
	Remove(ctx context.Context, refs []string) error
}
