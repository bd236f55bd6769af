package http

import (
	"net/http"

	"textile/internal/core/application/usecases/commands"
	"textile/internal/core/application/usecases/queries"
	"textile/internal/core/domain/model/client"
	"textile/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// CreateClient handles POST /api/v1/clients.
func (s *Server) CreateClient(ctx echo.Context) error {
	var body servers.NewClient
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var contact client.Contact
	if body.Address != nil {
		contact.Address = *body.Address
	}
	if body.TaxId != nil {
		contact.TaxID = *body.TaxId
	}
	if body.Phone != nil {
		contact.Phone = *body.Phone
	}

	var standing client.Standing
	if body.Standing != nil {
		standing = client.Standing(*body.Standing)
	}

	cmd, err := commands.NewCreateClientCommand(body.Name, contact, standing, actorFrom(ctx))
	if err != nil {
		return s.fail(ctx, err)
	}

	id, err := s.commands.CreateClient.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: id.Int64()})
}

// GetCatalog handles GET /api/v1/catalog.
func (s *Server) GetCatalog(ctx echo.Context) error {
	current, err := s.queries.GetCatalog.Handle(ctx.Request().Context(), queries.NewGetCatalogQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toCatalog(current))
}

// UpdateCatalog handles PUT /api/v1/catalog.
func (s *Server) UpdateCatalog(ctx echo.Context) error {
	var body servers.Catalog
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	updated, err := fromCatalog(body)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpdateCatalogCommand(updated, actorFrom(ctx))
	if err != nil {
		return s.fail(ctx, err)
	}

	changed, err := s.commands.UpdateCatalog.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	if changed == nil {
		changed = []string{}
	}

	return ctx.JSON(http.StatusOK, servers.CatalogUpdated{Changed: changed})
}

// UploadPhoto handles POST /api/v1/photos.
func (s *Server) UploadPhoto(ctx echo.Context) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return badRequest(ctx, "Missing file part")
	}

	src, err := file.Open()
	if err != nil {
		return badRequest(ctx, "Unreadable file part")
	}
	defer src.Close()

	cmd, err := commands.NewUploadPhotoCommand(file.Filename, file.Header.Get(echo.HeaderContentType), src)
	if err != nil {
		return s.fail(ctx, err)
	}

	ref, err := s.commands.UploadPhoto.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.Reference{Ref: ref})
}
