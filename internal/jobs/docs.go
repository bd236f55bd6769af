// Package jobs provides scheduled background tasks.
//
// Jobs use github.com/robfig/cron/v3 with six-field expressions (seconds first).
//
// # Available Jobs
//
// LedgerIntegrityJob recomputes finance entry margins and payment batch totals
// from the stored rows and logs every mismatch. It only reads, so it is safe to
// run next to live settlement. The default schedule is nightly at 03:00.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(verifyLedgerHandler, "0 0 3 * * *", logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
