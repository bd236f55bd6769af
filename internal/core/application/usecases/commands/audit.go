package commands

import (
	"context"
	"time"

	"textile/internal/core/domain/model/audit"
	"textile/internal/core/ports"
)

// appendAudit builds and appends entries in order. The first failure aborts, which
// makes the surrounding command roll back.
func appendAudit(ctx context.Context, log ports.AuditLog, now time.Time, records ...audit.Record) error {
	for _, r := range records {
		entry, err := audit.NewEntry(r, now)
		if err != nil {
			return err
		}
		if err = log.Append(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

func actorOrDefault(actor string) string {
	if actor == "" {
		return audit.DefaultActor
	}
	return actor
}
