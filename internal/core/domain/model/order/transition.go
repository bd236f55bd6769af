package order

import (
	"errors"
	"fmt"
	"slices"

	"textile/internal/pkg/errs"
)

// Effect is a side effect bound to a transition. The command handler that applies a
// transition runs its effects in the same transaction as the status write.
type Effect int

const (
	// RecordShipment stores a shipment record with a generated document reference.
	RecordShipment Effect = iota + 1

	// RecordNonConformity stores the supplier-facing defect report. Requires kind and description.
	RecordNonConformity

	// RevisePrices applies optional cost and sale revisions, one PRICE_UPDATE audit per changed field.
	RevisePrices

	// CreateFinanceEntry snapshots cost and sale into exactly one unsettled finance entry.
	CreateFinanceEntry
)

func (e Effect) String() string {
	switch e {
	case RecordShipment:
		return "RECORD_SHIPMENT"
	case RecordNonConformity:
		return "RECORD_NONCONFORMITY"
	case RevisePrices:
		return "REVISE_PRICES"
	case CreateFinanceEntry:
		return "CREATE_FINANCE_ENTRY"
	default:
		return "UNKNOWN"
	}
}

var (
	ErrTransitionIsNotAllowed   = errors.New("transition is not allowed")
	ErrTransitionIsDuplicated   = errors.New("transition is declared twice")
	ErrTriggerIsUnused          = errors.New("trigger is not used by any transition")
	ErrStatusIsUnreachable      = errors.New("status is unreachable from CREATED")
	ErrTransitionTableIsInvalid = errors.New("transition table is invalid")
)

// Transition is one row of the transition table.
type Transition struct {
	From    Status
	Trigger Trigger
	To      Status
	Effects []Effect
}

// Has reports whether the transition carries the given side effect.
func (t Transition) Has(effect Effect) bool {
	return slices.Contains(t.Effects, effect)
}

func (t Transition) String() string {
	return fmt.Sprintf("%s --%s--> %s", t.From, t.Trigger, t.To)
}

type transitionKey struct {
	from    Status
	trigger Trigger
}

// TransitionTable maps (state, trigger) to the next state and its side effects.
// It is immutable after construction and safe for concurrent use.
type TransitionTable struct {
	transitions map[transitionKey]Transition
	declared    []Transition
}

// NewTransitionTable builds a table from explicit rows.
//
// Returns an error if a row uses an invalid status or trigger, or if the same
// (state, trigger) pair is declared twice.
func NewTransitionTable(transitions ...Transition) (*TransitionTable, error) {
	table := &TransitionTable{
		transitions: make(map[transitionKey]Transition, len(transitions)),
		declared:    make([]Transition, 0, len(transitions)),
	}

	for _, t := range transitions {
		if err := errors.Join(t.From.Validate(), t.Trigger.Validate(), t.To.Validate()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrTransitionTableIsInvalid, t, err)
		}

		key := transitionKey{from: t.From, trigger: t.Trigger}
		if _, exists := table.transitions[key]; exists {
			return nil, fmt.Errorf("%w: %w: %s", ErrTransitionTableIsInvalid, ErrTransitionIsDuplicated, t)
		}

		t.Effects = slices.Clone(t.Effects)
		table.transitions[key] = t
		table.declared = append(table.declared, t)
	}

	return table, nil
}

// DefaultTransitionTable returns the production lifecycle.
func DefaultTransitionTable() *TransitionTable {
	table, err := NewTransitionTable(
		Transition{From: Created, Trigger: SendToSupplier, To: AwaitingConfection,
			Effects: []Effect{RecordShipment}},
		Transition{From: AwaitingConfection, Trigger: ArriveConforming, To: InStock},
		Transition{From: AwaitingConfection, Trigger: ArriveNonConforming, To: ReceivedNonConforming},
		Transition{From: AwaitingConfection, Trigger: ReturnToEdit, To: Created},
		Transition{From: ReceivedNonConforming, Trigger: ResendAfterNonConformity, To: AwaitingConfection,
			Effects: []Effect{RecordNonConformity}},
		Transition{From: InStock, Trigger: CompleteDelivery, To: Delivered,
			Effects: []Effect{RevisePrices, CreateFinanceEntry}},
		Transition{From: InStock, Trigger: ReturnToConfection, To: AwaitingConfection},
	)
	if err != nil {
		panic(err)
	}
	return table
}

// Lookup returns the transition for trigger fired from status from.
//
// Returns *errs.ValueIsInvalidError when the pair is not in the table, for example
// COMPLETE_DELIVERY requested on a CREATED order.
func (t *TransitionTable) Lookup(from Status, trigger Trigger) (Transition, error) {
	if err := trigger.Validate(); err != nil {
		return Transition{}, err
	}

	tr, ok := t.transitions[transitionKey{from: from, trigger: trigger}]
	if !ok {
		return Transition{}, errs.NewValueIsInvalidErrorWithCause(
			"transition",
			fmt.Errorf("%w: %s from %s", ErrTransitionIsNotAllowed, trigger, from),
		)
	}

	tr.Effects = slices.Clone(tr.Effects)
	return tr, nil
}

// Transitions returns the rows in declaration order.
func (t *TransitionTable) Transitions() []Transition {
	out := make([]Transition, len(t.declared))
	for i, tr := range t.declared {
		tr.Effects = slices.Clone(tr.Effects)
		out[i] = tr
	}
	return out
}

// TableReport summarizes the shape of a validated table.
type TableReport struct {
	// Unreachable lists reserved statuses no transition reaches.
	Unreachable []Status

	// Terminal lists reachable statuses with no outgoing transition.
	Terminal []Status
}

// Validate checks the table for completeness.
//
// Rules:
//   - every trigger is used by at least one row
//   - every non-reserved status is reachable from Created
//
// Unreachable reserved statuses are not an error; they are returned in the report
// so startup can log them.
func (t *TransitionTable) Validate() (TableReport, error) {
	var problems []error

	used := make(map[Trigger]bool)
	outgoing := make(map[Status][]Status)
	for _, tr := range t.declared {
		used[tr.Trigger] = true
		outgoing[tr.From] = append(outgoing[tr.From], tr.To)
	}

	for _, trigger := range AllTriggers() {
		if !used[trigger] {
			problems = append(problems, fmt.Errorf("%w: %s", ErrTriggerIsUnused, trigger))
		}
	}

	reached := map[Status]bool{Created: true}
	queue := []Status{Created}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range outgoing[current] {
			if !reached[next] {
				reached[next] = true
				queue = append(queue, next)
			}
		}
	}

	var report TableReport
	for _, status := range AllStatuses() {
		switch {
		case !reached[status] && status.IsReserved():
			report.Unreachable = append(report.Unreachable, status)
		case !reached[status]:
			problems = append(problems, fmt.Errorf("%w: %s", ErrStatusIsUnreachable, status))
		case len(outgoing[status]) == 0:
			report.Terminal = append(report.Terminal, status)
		}
	}

	if len(problems) > 0 {
		return report, fmt.Errorf("%w: %w", ErrTransitionTableIsInvalid, errors.Join(problems...))
	}
	return report, nil
}
