package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"textile/internal/core/domain/model/audit"
	"textile/internal/core/domain/model/finance"
	"textile/internal/core/domain/model/order"
	"textile/internal/core/ports"
	"textile/internal/pkg/errs"
)

var (
	ErrPayloadIsNotAccepted = errors.New("payload is not accepted by this transition")
)

// TransitionOrderCommandHandler runs the order state machine.
//
// One transaction covers the whole transition:
//   - the order row is locked without waiting
//   - the (status, trigger) pair is looked up in the transition table
//   - the side effects bound to the transition run in table order
//   - the status is written with a version check
//   - the audit entries are appended
//
// Any failure rolls everything back, leaving the order in its previous state.
type TransitionOrderCommandHandler struct {
	uowFactory LifecycleUoWFactory
	table      *order.TransitionTable
	documents  ports.DocumentGenerator
}

func NewTransitionOrderCommandHandler(
	uowFactory LifecycleUoWFactory,
	table *order.TransitionTable,
	documents ports.DocumentGenerator,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		table:      table,
		documents:  documents,
	}
}

// Handle applies the transition and returns the updated order.
//
// Returns:
//   - *errs.ValueIsInvalidError for a transition not in the table or a payload the
//     transition does not accept
//   - *errs.ValueIsRequiredError when RESEND_AFTER_NONCONFORMITY has no report
//   - *errs.ObjectNotFoundError when the order does not exist
//   - *errs.ConcurrencyConflictError when another request holds or changed the order
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	tr, err := h.table.Lookup(o.Status(), cmd.Trigger())
	if err != nil {
		return nil, err
	}

	if err = checkPayload(tr, cmd); err != nil {
		return nil, err
	}

	now := time.Now()
	var records []audit.Record
	for _, effect := range tr.Effects {
		effectRecords, effectErr := h.runEffect(ctx, uow, effect, o, cmd, now)
		if effectErr != nil {
			return nil, fmt.Errorf("%s: %w", effect, effectErr)
		}
		records = append(records, effectRecords...)
	}

	statusChange, err := o.Apply(tr, now)
	if err != nil {
		return nil, err
	}
	records = append(records, changeRecords(o, audit.ActionStatusUpdate, []order.FieldChange{statusChange}, cmd.Actor())...)

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = appendAudit(ctx, uow.AuditLog(), now, records...); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func (h TransitionOrderCommandHandler) runEffect(
	ctx context.Context,
	uow LifecycleUoW,
	effect order.Effect,
	o *order.Order,
	cmd TransitionOrderCommand,
	now time.Time,
) ([]audit.Record, error) {
	switch effect {
	case order.RecordShipment:
		return nil, h.recordShipment(ctx, uow.ShipmentRepository(), o, cmd.Medium(), now)

	case order.RecordNonConformity:
		report, _ := cmd.NonConformity()
		return nil, recordNonConformity(ctx, uow.NonConformityRepository(), o, report, now)

	case order.RevisePrices:
		revision, ok := cmd.PriceRevision()
		if !ok {
			return nil, nil
		}
		changes, err := o.RevisePrices(revision.PriceCost, revision.PriceSale, now)
		if err != nil {
			return nil, err
		}
		return changeRecords(o, audit.ActionPriceUpdate, changes, cmd.Actor()), nil

	case order.CreateFinanceEntry:
		entry, err := createFinanceEntry(ctx, uow.FinanceEntryRepository(), o, now)
		if err != nil {
			return nil, err
		}
		return []audit.Record{{
			Entity:   audit.EntityFinanceEntry,
			EntityID: entry.ID().String(),
			Action:   audit.ActionCreate,
			After:    entry.Snapshot(),
			Actor:    cmd.Actor(),
		}}, nil

	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("effect", fmt.Errorf("unknown effect %d", effect))
	}
}

func (h TransitionOrderCommandHandler) recordShipment(
	ctx context.Context,
	repo ports.ShipmentRepository,
	o *order.Order,
	medium string,
	now time.Time,
) error {
	ref, err := h.documents.Generate(ctx, o.Snapshot())
	if err != nil {
		return err
	}

	id, err := repo.NextID(ctx)
	if err != nil {
		return err
	}

	shipment, err := order.NewShipment(id, o.ID(), medium, ref, now)
	if err != nil {
		return err
	}

	return repo.Add(ctx, shipment)
}

func recordNonConformity(
	ctx context.Context,
	repo ports.NonConformityRepository,
	o *order.Order,
	report order.NonConformityReport,
	now time.Time,
) error {
	id, err := repo.NextID(ctx)
	if err != nil {
		return err
	}

	nc, err := order.NewNonConformity(id, o.ID(), report, now)
	if err != nil {
		return err
	}

	return repo.Add(ctx, nc)
}

func createFinanceEntry(
	ctx context.Context,
	repo ports.FinanceEntryRepository,
	o *order.Order,
	now time.Time,
) (*finance.Entry, error) {
	id, err := repo.NextID(ctx)
	if err != nil {
		return nil, err
	}

	entry, err := finance.NewEntry(id, o.ID(), o.PriceCost(), o.PriceSale(), now)
	if err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// checkPayload matches the optional payloads of the command against the effects
// of the transition.
func checkPayload(tr order.Transition, cmd TransitionOrderCommand) error {
	if _, ok := cmd.PriceRevision(); ok && !tr.Has(order.RevisePrices) {
		return errs.NewValueIsInvalidErrorWithCause("price_revision",
			fmt.Errorf("%w: %s", ErrPayloadIsNotAccepted, tr))
	}

	_, hasReport := cmd.NonConformity()
	switch {
	case tr.Has(order.RecordNonConformity) && !hasReport:
		return errs.NewValueIsRequiredErrorWithCause("nonconformity",
			fmt.Errorf("%s requires kind and description", tr.Trigger))
	case hasReport && !tr.Has(order.RecordNonConformity):
		return errs.NewValueIsInvalidErrorWithCause("nonconformity",
			fmt.Errorf("%w: %s", ErrPayloadIsNotAccepted, tr))
	}

	return nil
}
