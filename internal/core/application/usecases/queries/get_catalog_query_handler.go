package queries

import (
	"context"

	"textile/internal/core/domain/model/catalog"

	"gorm.io/gorm"
)

type GetCatalogQueryHandler struct {
	db *gorm.DB
}

func NewGetCatalogQueryHandler(db *gorm.DB) GetCatalogQueryHandler {
	return GetCatalogQueryHandler{db: db}
}

func (h GetCatalogQueryHandler) Handle(ctx context.Context, query GetCatalogQuery) (*catalog.Catalog, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`SELECT key, value FROM config WHERE key IN ?`, catalog.Keys()).Rows()
	if err != nil {
		return nil, storageError("read catalog", err)
	}
	defer rows.Close()

	stored := make(map[string][]byte)
	for rows.Next() {
		var (
			key   string
			value []byte
		)
		if err = rows.Scan(&key, &value); err != nil {
			return nil, storageError("scan catalog", err)
		}
		stored[key] = value
	}
	if err = rows.Err(); err != nil {
		return nil, storageError("read catalog", err)
	}

	return catalog.FromStored(stored)
}
