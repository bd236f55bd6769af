package commands

import (
	"context"
	"slices"
	"time"

	"textile/internal/core/domain/model/audit"
	"textile/internal/core/ports"
)

// OrphanCleanupEntityID is the audit entity id of object cleanups.
const OrphanCleanupEntityID = "cleanup"

// OrphanReport is the outcome of a cleanup run.
type OrphanReport struct {
	// Scanned counts the objects listed in storage.
	Scanned int
	// Orphans are the unreferenced objects old enough to remove, sorted.
	Orphans []string
	// Removed counts the objects deleted; zero on a dry run.
	Removed int
}

// CleanOrphanedObjectsCommandHandler compares the object inventory with the
// references held by the store. Objects whose age is unknown are kept.
//
// A removal is audited as ORPHANED_OBJECTS_DELETED on entity system, field
// objects, with the removed references as the after value. The objects are
// deleted before the audit entry commits, so a failed commit leaves the removal
// unrecorded.
type CleanOrphanedObjectsCommandHandler struct {
	uowFactory MaintenanceUoWFactory
	objects    ports.ObjectInventory
	now        func() time.Time
}

func NewCleanOrphanedObjectsCommandHandler(
	uowFactory MaintenanceUoWFactory,
	objects ports.ObjectInventory,
) CleanOrphanedObjectsCommandHandler {
	return CleanOrphanedObjectsCommandHandler{
		uowFactory: uowFactory,
		objects:    objects,
		now:        time.Now,
	}
}

func (h CleanOrphanedObjectsCommandHandler) Handle(ctx context.Context, cmd CleanOrphanedObjectsCommand) (OrphanReport, error) {
	if err := cmd.Validate(); err != nil {
		return OrphanReport{}, err
	}

	stored, err := h.objects.List(ctx)
	if err != nil {
		return OrphanReport{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return OrphanReport{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	referenced, err := uow.ObjectReferences().Referenced(ctx)
	if err != nil {
		return OrphanReport{}, err
	}

	now := h.now()
	report := OrphanReport{
		Scanned: len(stored),
		Orphans: orphans(stored, referenced, now.Add(-cmd.MinAge())),
	}
	if !cmd.Remove() || len(report.Orphans) == 0 {
		return report, uow.Commit(ctx)
	}

	if err = h.objects.Remove(ctx, report.Orphans); err != nil {
		return OrphanReport{}, err
	}
	report.Removed = len(report.Orphans)

	if err = appendAudit(ctx, uow.AuditLog(), now, audit.Record{
		Entity:   audit.EntitySystem,
		EntityID: OrphanCleanupEntityID,
		Action:   audit.ActionOrphansRemoved,
		Field:    "objects",
		After:    report.Orphans,
		Actor:    cmd.Actor(),
	}); err != nil {
		return OrphanReport{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return OrphanReport{}, err
	}

	return report, nil
}

func orphans(stored []ports.StoredObject, referenced []string, cutoff time.Time) []string {
	inUse := make(map[string]struct{}, len(referenced))
	for _, ref := range referenced {
		inUse[ref] = struct{}{}
	}

	found := make([]string, 0)
	for _, o := range stored {
		if _, ok := inUse[o.Ref]; ok {
			continue
		}
		if o.CreatedAt.IsZero() || o.CreatedAt.After(cutoff) {
			continue
		}
		found = append(found, o.Ref)
	}
	slices.Sort(found)
	return found
}
