// Package objectstore keeps uploaded photos and generated shipment documents in
// Supabase storage and hands out their public URLs as opaque references.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"textile/internal/pkg/errs"

	storage "github.com/supabase-community/storage-go"
)

var ErrStoreIsNotConfigured = errors.New("object storage is not configured")

// Object is a stored file. Path is relative to the bucket.
type Object struct {
	Path      string
	CreatedAt time.Time
}

// Bucket is the part of the storage API the store uses.
type Bucket interface {
	Upload(path string, data io.Reader, contentType string) error
	// List returns every file below prefix, descending into folders.
	List(prefix string) ([]Object, error)
	Remove(paths []string) error
}

// Store uploads objects to one bucket.
type Store struct {
	bucket  Bucket
	baseURL string
	name    string
	logger  *slog.Logger
}

// NewStore builds a store on an arbitrary bucket implementation. baseURL is the
// project URL the public links are built from.
func NewStore(bucket Bucket, baseURL, name string, logger *slog.Logger) (*Store, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if bucket == nil || baseURL == "" || name == "" {
		return nil, ErrStoreIsNotConfigured
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		bucket:  bucket,
		baseURL: baseURL,
		name:    name,
		logger:  logger.With("component", "objectstore", "bucket", name),
	}, nil
}

// NewSupabaseStore connects to the storage API of a Supabase project with a
// service role key.
func NewSupabaseStore(projectURL, serviceRoleKey, bucket string, logger *slog.Logger) (*Store, error) {
	projectURL = strings.TrimRight(projectURL, "/")
	if projectURL == "" || serviceRoleKey == "" {
		return nil, ErrStoreIsNotConfigured
	}

	client := storage.NewClient(projectURL+"/storage/v1", serviceRoleKey, nil)
	return NewStore(supabaseBucket{client: client, name: bucket}, projectURL, bucket, logger)
}

// Put uploads content under path and returns its public URL.
func (s *Store) Put(ctx context.Context, path, contentType string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errs.NewStorageError("upload "+path, err)
	}
	if err := s.bucket.Upload(path, content, contentType); err != nil {
		s.logger.Error("upload failed", "path", path, "error", err)
		return "", errs.NewStorageError("upload "+path, err)
	}

	url := s.PublicURL(path)
	s.logger.Debug("object stored", "path", path, "content_type", contentType)
	return url, nil
}

func (s *Store) PublicURL(path string) string {
	return s.publicPrefix() + strings.TrimLeft(path, "/")
}

// PathOf is the inverse of PublicURL. It reports false for references that do not
// point into this bucket.
func (s *Store) PathOf(ref string) (string, bool) {
	path, ok := strings.CutPrefix(ref, s.publicPrefix())
	if !ok || path == "" {
		return "", false
	}
	return path, true
}

// List returns the objects below prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewStorageError("list "+prefix, err)
	}
	objects, err := s.bucket.List(prefix)
	if err != nil {
		s.logger.Error("list failed", "prefix", prefix, "error", err)
		return nil, errs.NewStorageError("list "+prefix, err)
	}
	return objects, nil
}

// Remove deletes the objects at paths, removeBatchSize at a time.
func (s *Store) Remove(ctx context.Context, paths []string) error {
	for batch := range slices.Chunk(paths, removeBatchSize) {
		if err := ctx.Err(); err != nil {
			return errs.NewStorageError("remove objects", err)
		}
		if err := s.bucket.Remove(batch); err != nil {
			s.logger.Error("remove failed", "count", len(batch), "error", err)
			return errs.NewStorageError("remove objects", err)
		}
		s.logger.Info("objects removed", "count", len(batch))
	}
	return nil
}

func (s *Store) publicPrefix() string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/", s.baseURL, s.name)
}
