package commands

import (
	"errors"

	"textile/internal/core/domain/model/catalog"
	"textile/internal/pkg/errs"
	"textile/internal/pkg/guard"
)

var ErrUpdateCatalogCommandIsNotConstructed = errors.New(
	"UpdateCatalogCommand must be created via NewUpdateCatalogCommand constructor",
)

// UpdateCatalogCommand replaces the whole catalog configuration.
type UpdateCatalogCommand struct { //nolint:recvcheck //using for validation
	catalog *catalog.Catalog
	actor   string

	guard guard.ConstructorGuard
}

func NewUpdateCatalogCommand(c *catalog.Catalog, actor string) (UpdateCatalogCommand, error) {
	if c == nil {
		return UpdateCatalogCommand{}, errs.NewValueIsRequiredError("catalog")
	}

	return UpdateCatalogCommand{
		catalog: c,
		actor:   actorOrDefault(actor),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateCatalogCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCatalogCommandIsNotConstructed)
}

func (c UpdateCatalogCommand) Catalog() *catalog.Catalog { return c.catalog }
func (c UpdateCatalogCommand) Actor() string             { return c.actor }
