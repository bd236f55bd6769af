package queries

import (
	"errors"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrVerifyLedgerQueryIsNotConstructed = errors.New(
	"VerifyLedgerQuery must be created via NewVerifyLedgerQuery constructor",
)

// VerifyLedgerQuery checks the finance ledger without changing it.
type VerifyLedgerQuery struct {
	guard guard.ConstructorGuard
}

func NewVerifyLedgerQuery() VerifyLedgerQuery {
	return VerifyLedgerQuery{guard: guard.NewConstructorGuard()}
}

func (q VerifyLedgerQuery) Validate() error {
	return q.guard.Validate(ErrVerifyLedgerQueryIsNotConstructed)
}

// LedgerReport lists every inconsistency found. An empty report means the ledger
// is consistent.
type LedgerReport struct {
	EntriesChecked int
	BatchesChecked int

	// MarginMismatches are entries whose margin differs from sale - cost.
	MarginMismatches []MarginMismatch

	// BatchMismatches are batches whose total differs from the sum of the cost of
	// the entries they settled.
	BatchMismatches []BatchMismatch

	// DanglingEntries are settled entries without a batch, or unsettled ones with a batch.
	DanglingEntries []kernel.ID
}

func (r LedgerReport) IsConsistent() bool {
	return len(r.MarginMismatches) == 0 && len(r.BatchMismatches) == 0 && len(r.DanglingEntries) == 0
}

type MarginMismatch struct {
	EntryID  kernel.ID
	Stored   decimal.Decimal
	Expected decimal.Decimal
}

type BatchMismatch struct {
	BatchID  kernel.ID
	Total    decimal.Decimal
	Computed decimal.Decimal
}
