package commands

import (
	"context"

	"textile/internal/core/ports"
)

// UploadPhotoCommandHandler stores a photo and returns its opaque reference.
// Nothing is written to the ledger; the reference is attached to an order or a
// nonconformity by a later command.
type UploadPhotoCommandHandler struct {
	store ports.PhotoStore
}

func NewUploadPhotoCommandHandler(store ports.PhotoStore) UploadPhotoCommandHandler {
	return UploadPhotoCommandHandler{store: store}
}

func (h UploadPhotoCommandHandler) Handle(ctx context.Context, cmd UploadPhotoCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}
	return h.store.Upload(ctx, cmd.FileName(), cmd.ContentType(), cmd.Content())
}
