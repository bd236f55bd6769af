package objectstore

import (
	"context"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

const photoPrefix = "photos"

// PhotoStore keeps order and nonconformity photos under photos/<year>/<month>/.
type PhotoStore struct {
	store *Store
	now   func() time.Time
}

func NewPhotoStore(store *Store) *PhotoStore {
	return &PhotoStore{store: store, now: time.Now}
}

// Upload stores the image under a fresh random name that keeps the original
// extension, and returns its public URL.
func (p *PhotoStore) Upload(ctx context.Context, fileName, contentType string, content io.Reader) (string, error) {
	now := p.now().UTC()
	key := path.Join(photoPrefix, now.Format("2006"), now.Format("01"),
		uuid.NewString()+strings.ToLower(path.Ext(fileName)))
	return p.store.Put(ctx, key, contentType, content)
}
