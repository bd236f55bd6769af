package commands

import (
	"errors"
	"strings"

	"textile/internal/core/domain/model/client"
	"textile/internal/pkg/errs"
	"textile/internal/pkg/guard"
)

var ErrCreateClientCommandIsNotConstructed = errors.New(
	"CreateClientCommand must be created via NewCreateClientCommand constructor",
)

// CreateClientCommand registers a client that orders can reference.
type CreateClientCommand struct { //nolint:recvcheck //using for validation
	name     string
	contact  client.Contact
	standing client.Standing
	actor    string

	guard guard.ConstructorGuard
}

// NewCreateClientCommand validates the name and standing. An empty standing means GOOD.
func NewCreateClientCommand(name string, contact client.Contact, standing client.Standing, actor string) (CreateClientCommand, error) {
	cmd := CreateClientCommand{
		contact:  contact,
		standing: standing,
		actor:    actorOrDefault(actor),
		guard:    guard.NewConstructorGuard(),
	}

	if strings.TrimSpace(name) == "" {
		return CreateClientCommand{}, errs.NewValueIsRequiredError("name")
	}
	cmd.name = name

	if standing != "" {
		if err := standing.Validate(); err != nil {
			return CreateClientCommand{}, err
		}
	}

	return cmd, nil
}

func (c CreateClientCommand) Validate() error {
	return c.guard.Validate(ErrCreateClientCommandIsNotConstructed)
}

func (c CreateClientCommand) Name() string              { return c.name }
func (c CreateClientCommand) Contact() client.Contact   { return c.contact }
func (c CreateClientCommand) Standing() client.Standing { return c.standing }
func (c CreateClientCommand) Actor() string             { return c.actor }
