package jobs

import (
	"context"
	"log/slog"
	"time"

	"textile/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultLedgerIntegritySchedule runs the check every night at 03:00.
const DefaultLedgerIntegritySchedule = "0 0 3 * * *"

// LedgerVerifier runs the read-only ledger integrity check.
type LedgerVerifier interface {
	Handle(ctx context.Context, query queries.VerifyLedgerQuery) (queries.LedgerReport, error)
}

// LedgerIntegrityJob periodically recomputes margins and batch totals and logs
// every inconsistency found. It never writes.
type LedgerIntegrityJob struct {
	verifier LedgerVerifier
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewLedgerIntegrityJob creates the job. schedule is a six-field cron expression
// (with seconds); an empty schedule uses DefaultLedgerIntegritySchedule.
func NewLedgerIntegrityJob(verifier LedgerVerifier, schedule string, logger *slog.Logger) *LedgerIntegrityJob {
	if schedule == "" {
		schedule = DefaultLedgerIntegritySchedule
	}
	return &LedgerIntegrityJob{
		verifier: verifier,
		schedule: schedule,
		timeout:  time.Minute,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "ledger_integrity_job"),
	}
}

// Start registers the check on its schedule and starts the scheduler.
func (j *LedgerIntegrityJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Ledger integrity job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running check to finish.
func (j *LedgerIntegrityJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Ledger integrity job stopped")
}

func (j *LedgerIntegrityJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	j.Check(ctx)
}

// Check runs one verification and logs its outcome. It reports whether the
// ledger was found consistent.
func (j *LedgerIntegrityJob) Check(ctx context.Context) bool {
	report, err := j.verifier.Handle(ctx, queries.NewVerifyLedgerQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Ledger integrity check failed", "error", err)
		return false
	}

	if report.IsConsistent() {
		j.logger.InfoContext(ctx, "Ledger is consistent",
			"entries_checked", report.EntriesChecked,
			"batches_checked", report.BatchesChecked,
		)
		return true
	}

	for _, m := range report.MarginMismatches {
		j.logger.WarnContext(ctx, "Finance entry margin mismatch",
			"entry_id", m.EntryID.Int64(),
			"stored", m.Stored.String(),
			"expected", m.Expected.String(),
		)
	}
	for _, m := range report.BatchMismatches {
		j.logger.WarnContext(ctx, "Payment batch total mismatch",
			"batch_id", m.BatchID.Int64(),
			"total", m.Total.String(),
			"computed", m.Computed.String(),
		)
	}
	for _, id := range report.DanglingEntries {
		j.logger.WarnContext(ctx, "Finance entry settlement flag disagrees with its batch", "entry_id", id.Int64())
	}
	return false
}
