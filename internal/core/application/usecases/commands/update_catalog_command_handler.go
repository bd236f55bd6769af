package commands

import (
	"context"
	"encoding/json"
	"reflect"
	"slices"
	"time"

	"textile/internal/core/domain/model/audit"
	"textile/internal/core/domain/model/catalog"
)

// UpdateCatalogCommandHandler stores a new catalog and writes one UPDATE audit
// entry (entity config, entity id = config key) per key whose value changed.
// Orders already created keep their selection.
type UpdateCatalogCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewUpdateCatalogCommandHandler(uowFactory CatalogUoWFactory) UpdateCatalogCommandHandler {
	return UpdateCatalogCommandHandler{uowFactory: uowFactory}
}

// Handle returns the keys that changed, sorted.
func (h UpdateCatalogCommandHandler) Handle(ctx context.Context, cmd UpdateCatalogCommand) ([]string, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CatalogRepository()
	current, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	changed, records, err := catalogChanges(current, cmd.Catalog(), cmd.Actor())
	if err != nil {
		return nil, err
	}
	if len(changed) == 0 {
		// Load may have seeded defaults.
		return nil, uow.Commit(ctx)
	}

	if err = repo.Save(ctx, cmd.Catalog()); err != nil {
		return nil, err
	}

	if err = appendAudit(ctx, uow.AuditLog(), time.Now(), records...); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return changed, nil
}

// catalogChanges compares both catalogs key by key through their JSON encoding.
func catalogChanges(before, after *catalog.Catalog, actor string) ([]string, []audit.Record, error) {
	old := before.Values()
	updated := after.Values()

	keys := make([]string, 0, len(updated))
	for key := range updated {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var changed []string
	var records []audit.Record
	for _, key := range keys {
		same, err := sameJSON(old[key], updated[key])
		if err != nil {
			return nil, nil, err
		}
		if same {
			continue
		}
		changed = append(changed, key)
		records = append(records, audit.Record{
			Entity:   audit.EntityConfig,
			EntityID: key,
			Action:   audit.ActionUpdate,
			Field:    key,
			Before:   old[key],
			After:    updated[key],
			Actor:    actor,
		})
	}
	return changed, records, nil
}

func sameJSON(a, b any) (bool, error) {
	rawA, err := json.Marshal(a)
	if err != nil {
		return false, err
	}
	rawB, err := json.Marshal(b)
	if err != nil {
		return false, err
	}

	var va, vb any
	if err = json.Unmarshal(rawA, &va); err != nil {
		return false, err
	}
	if err = json.Unmarshal(rawB, &vb); err != nil {
		return false, err
	}
	return reflect.DeepEqual(va, vb), nil
}
