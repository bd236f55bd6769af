package commands

import (
	"context"
	"time"

	"textile/internal/core/domain/model/audit"
	"textile/internal/core/domain/model/client"
	"textile/internal/core/domain/model/kernel"
)

// CreateClientCommandHandler registers clients and audits the creation.
type CreateClientCommandHandler struct {
	uowFactory ClientUoWFactory
}

func NewCreateClientCommandHandler(uowFactory ClientUoWFactory) CreateClientCommandHandler {
	return CreateClientCommandHandler{uowFactory: uowFactory}
}

// Handle stores the client and returns its identifier.
func (h CreateClientCommandHandler) Handle(ctx context.Context, cmd CreateClientCommand) (kernel.ID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.ID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.ID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	clientRepo := uow.ClientRepository()
	id, err := clientRepo.NextID(ctx)
	if err != nil {
		return kernel.ID{}, err
	}

	c, err := client.NewClient(id, cmd.Name(), cmd.Contact(), cmd.Standing())
	if err != nil {
		return kernel.ID{}, err
	}

	if err = clientRepo.Add(ctx, c); err != nil {
		return kernel.ID{}, err
	}

	if err = appendAudit(ctx, uow.AuditLog(), time.Now(), audit.Record{
		Entity:   audit.EntityClient,
		EntityID: id.String(),
		Action:   audit.ActionCreate,
		After:    c.Snapshot(),
		Actor:    cmd.Actor(),
	}); err != nil {
		return kernel.ID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.ID{}, err
	}

	return id, nil
}
