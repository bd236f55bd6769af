package commands

import (
	"errors"
	"time"

	"textile/internal/pkg/errs"
	"textile/internal/pkg/guard"
)

// DefaultOrphanMinAge keeps objects uploaded in the last day: a photo is stored
// before the order that references it is created.
const DefaultOrphanMinAge = 24 * time.Hour

var ErrCleanOrphanedObjectsCommandIsNotConstructed = errors.New(
	"CleanOrphanedObjectsCommand must be created via NewCleanOrphanedObjectsCommand constructor",
)

// CleanOrphanedObjectsCommand looks for stored photos and documents that no order,
// nonconformity, shipment or document export references. With remove unset it only
// reports them.
type CleanOrphanedObjectsCommand struct { //nolint:recvcheck //using for validation
	remove bool
	minAge time.Duration
	actor  string

	guard guard.ConstructorGuard
}

// NewCleanOrphanedObjectsCommand builds the command. A zero minAge means
// DefaultOrphanMinAge.
func NewCleanOrphanedObjectsCommand(remove bool, minAge time.Duration, actor string) (CleanOrphanedObjectsCommand, error) {
	if minAge < 0 {
		return CleanOrphanedObjectsCommand{}, errs.NewValueIsOutOfRangeError("min_age", minAge.String(), "0s", "unbounded")
	}
	if minAge == 0 {
		minAge = DefaultOrphanMinAge
	}

	return CleanOrphanedObjectsCommand{
		remove: remove,
		minAge: minAge,
		actor:  actorOrDefault(actor),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c CleanOrphanedObjectsCommand) Validate() error {
	return c.guard.Validate(ErrCleanOrphanedObjectsCommandIsNotConstructed)
}

func (c CleanOrphanedObjectsCommand) Remove() bool          { return c.remove }
func (c CleanOrphanedObjectsCommand) MinAge() time.Duration { return c.minAge }
func (c CleanOrphanedObjectsCommand) Actor() string         { return c.actor }
