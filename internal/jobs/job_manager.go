package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	ledgerIntegrityJob *LedgerIntegrityJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(verifier LedgerVerifier, ledgerSchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		ledgerIntegrityJob: NewLedgerIntegrityJob(verifier, ledgerSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.ledgerIntegrityJob.Start(); err != nil {
		return fmt.Errorf("failed to start ledger integrity job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.ledgerIntegrityJob.Stop()
}
