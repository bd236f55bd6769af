package queries

import (
	"errors"

	"textile/internal/pkg/errs"
	"textile/internal/pkg/guard"
)

// Audit listing bounds.
const (
	DefaultAuditLimit = 50
	MaxAuditLimit     = 500
)

var ErrListAuditEntriesQueryIsNotConstructed = errors.New(
	"ListAuditEntriesQuery must be created via NewListAuditEntriesQuery constructor",
)

// ListAuditEntriesQuery reads the most recent audit entries. A zero limit means
// DefaultAuditLimit.
type ListAuditEntriesQuery struct {
	limit int

	guard guard.ConstructorGuard
}

func NewListAuditEntriesQuery(limit int) (ListAuditEntriesQuery, error) {
	if limit == 0 {
		limit = DefaultAuditLimit
	}
	if limit < 1 || limit > MaxAuditLimit {
		return ListAuditEntriesQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxAuditLimit)
	}
	return ListAuditEntriesQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q ListAuditEntriesQuery) Validate() error {
	return q.guard.Validate(ErrListAuditEntriesQueryIsNotConstructed)
}

func (q ListAuditEntriesQuery) Limit() int { return q.limit }
