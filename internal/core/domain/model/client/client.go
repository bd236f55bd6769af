// Package client provides the Client reference record that orders belong to.
package client

import (
	"errors"
	"fmt"
	"strings"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/errs"
)

var ErrClientIsNotConstructed = errors.New("Client must be created via NewClient constructor")

// Standing is the payment standing of a client.
type Standing string

const (
	Good       Standing = "GOOD"
	Delinquent Standing = "DELINQUENT"
)

func (s Standing) Validate() error {
	switch s {
	case Good, Delinquent:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("standing", fmt.Errorf("%q is not a valid standing", string(s)))
	}
}

// Contact holds the optional contact details of a client.
type Contact struct {
	Address string
	TaxID   string
	Phone   string
}

type Client struct {
	id       kernel.ID
	name     string
	contact  Contact
	standing Standing

	isConstructed bool
}

// NewClient registers a client. An empty standing defaults to Good.
func NewClient(id kernel.ID, name string, contact Contact, standing Standing) (*Client, error) {
	if standing == "" {
		standing = Good
	}

	var nameErr error
	name = strings.TrimSpace(name)
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}

	if err := errors.Join(id.Validate(), nameErr, standing.Validate()); err != nil {
		return nil, err
	}

	return &Client{
		id:   id,
		name: name,
		contact: Contact{
			Address: strings.TrimSpace(contact.Address),
			TaxID:   strings.TrimSpace(contact.TaxID),
			Phone:   strings.TrimSpace(contact.Phone),
		},
		standing:      standing,
		isConstructed: true,
	}, nil
}

// RestoreClient rebuilds a client from persistence.
func RestoreClient(id kernel.ID, name string, contact Contact, standing Standing) (*Client, error) {
	return NewClient(id, name, contact, standing)
}

func (c *Client) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrClientIsNotConstructed
	}
	return nil
}

func (c *Client) ID() kernel.ID      { return c.id }
func (c *Client) Name() string       { return c.name }
func (c *Client) Contact() Contact   { return c.contact }
func (c *Client) Standing() Standing { return c.standing }

type Snapshot struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	TaxID    string `json:"tax_id"`
	Phone    string `json:"phone"`
	Standing string `json:"standing"`
}

func (c *Client) Snapshot() Snapshot {
	return Snapshot{
		ID:       c.id.Int64(),
		Name:     c.name,
		Address:  c.contact.Address,
		TaxID:    c.contact.TaxID,
		Phone:    c.contact.Phone,
		Standing: string(c.standing),
	}
}
