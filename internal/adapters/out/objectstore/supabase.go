package objectstore

import (
	"io"
	"path"
	"strings"
	"time"

	storage "github.com/supabase-community/storage-go"
)

const (
	listPageSize    = 1000
	removeBatchSize = 1000
)

type supabaseBucket struct {
	client *storage.Client
	name   string
}

func (b supabaseBucket) Upload(path string, data io.Reader, contentType string) error {
	upsert := false
	_, err := b.client.UploadFile(b.name, path, data, storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	return err
}

// List pages through one folder level at a time. Entries without an id are
// folders.
func (b supabaseBucket) List(prefix string) ([]Object, error) {
	prefix = strings.Trim(prefix, "/")

	var objects []Object
	for offset := 0; ; offset += listPageSize {
		files, err := b.client.ListFiles(b.name, prefix, storage.FileSearchOptions{
			Limit:         listPageSize,
			Offset:        offset,
			SortByOptions: storage.SortBy{Column: "name", Order: "asc"},
		})
		if err != nil {
			return nil, err
		}

		for _, f := range files {
			full := path.Join(prefix, f.Name)
			if f.Id == "" {
				nested, err := b.List(full)
				if err != nil {
					return nil, err
				}
				objects = append(objects, nested...)
				continue
			}

			// An unparsable timestamp leaves CreatedAt zero.
			created, _ := time.Parse(time.RFC3339, f.CreatedAt)
			objects = append(objects, Object{Path: full, CreatedAt: created})
		}

		if len(files) < listPageSize {
			return objects, nil
		}
	}
}

func (b supabaseBucket) Remove(paths []string) error {
	_, err := b.client.RemoveFile(b.name, paths)
	return err
}
