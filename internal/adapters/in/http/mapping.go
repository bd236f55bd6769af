package http

import (
	"encoding/json"
	"errors"

	"textile/internal/core/application/usecases/queries"
	"textile/internal/core/domain/model/audit"
	"textile/internal/core/domain/model/catalog"
	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/order"
	"textile/internal/generated/servers"
	"textile/internal/pkg/errs"
)

func parseMoney(param, value string) (kernel.Money, error) {
	m, err := kernel.MoneyFromString(value)
	if err != nil {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return m, nil
}

func parseOptionalMoney(param string, value *string) (*kernel.Money, error) {
	if value == nil {
		return nil, nil
	}
	m, err := parseMoney(param, *value)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func parseNotes(raw *servers.Notes) (order.StructuredNotes, error) {
	var notes order.StructuredNotes
	if raw == nil || len(*raw) == 0 {
		return notes, nil
	}
	if err := json.Unmarshal(*raw, &notes); err != nil {
		return notes, errs.NewValueIsInvalidErrorWithCause("notes", err)
	}
	return notes, nil
}

func parseIDs(param string, values []int64) ([]kernel.ID, error) {
	ids := make([]kernel.ID, 0, len(values))
	var problems []error
	for _, v := range values {
		id, err := kernel.NewID(v)
		if err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(param, err))
			continue
		}
		ids = append(ids, id)
	}
	return ids, errors.Join(problems...)
}

func derefStrings(values *[]string) []string {
	if values == nil {
		return nil
	}
	return *values
}

func encodeNotes(notes order.StructuredNotes) (servers.Notes, error) {
	raw, err := json.Marshal(notes)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func toOrder(o *order.Order) (servers.Order, error) {
	notes, err := encodeNotes(o.Notes())
	if err != nil {
		return servers.Order{}, err
	}

	selection := o.Selection()
	return servers.Order{
		Id:        o.ID().Int64(),
		ClientId:  o.ClientID().Int64(),
		Category:  selection.Category,
		Type:      selection.Type,
		Product:   selection.Product,
		PriceCost: o.PriceCost().String(),
		PriceSale: o.PriceSale().String(),
		Notes:     notes,
		FreeNotes: o.FreeNotes(),
		Photos:    o.Photos(),
		Status:    o.Status().String(),
		Version:   o.Version(),
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}, nil
}

func toOrderSummary(s queries.OrderSummary) servers.OrderSummary {
	return servers.OrderSummary{
		Id:         s.ID.Int64(),
		ClientId:   s.ClientID.Int64(),
		ClientName: s.ClientName,
		Category:   s.Selection.Category,
		Type:       s.Selection.Type,
		Product:    s.Selection.Product,
		PriceCost:  s.PriceCost.String(),
		PriceSale:  s.PriceSale.String(),
		Status:     s.Status.String(),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func toOrderDetails(d queries.OrderDetails) (servers.OrderDetails, error) {
	notes, err := encodeNotes(d.Notes)
	if err != nil {
		return servers.OrderDetails{}, err
	}

	shipments := make([]servers.Shipment, len(d.Shipments))
	for i, sh := range d.Shipments {
		shipments[i] = servers.Shipment{
			Id:          sh.ID.Int64(),
			Medium:      sh.Medium,
			SentAt:      sh.SentAt,
			DocumentRef: sh.DocumentRef,
		}
	}

	nonConformities := make([]servers.NonConformity, len(d.NonConformities))
	for i, nc := range d.NonConformities {
		nonConformities[i] = servers.NonConformity{
			Id:          nc.ID.Int64(),
			Kind:        string(nc.Kind),
			Description: nc.Description,
			Photos:      nc.Photos,
			Count:       nc.Count,
			CreatedAt:   nc.CreatedAt,
		}
	}

	return servers.OrderDetails{
		OrderSummary:    toOrderSummary(d.OrderSummary),
		Notes:           notes,
		FreeNotes:       d.FreeNotes,
		Photos:          d.Photos,
		Version:         d.Version,
		Shipments:       shipments,
		NonConformities: nonConformities,
	}, nil
}

func toUnsettledEntry(e queries.UnsettledEntry) servers.UnsettledEntry {
	return servers.UnsettledEntry{
		EntryId:    e.EntryID.Int64(),
		OrderId:    e.OrderID.Int64(),
		Cost:       e.Cost.String(),
		Sale:       e.Sale.String(),
		Margin:     e.Margin.StringFixed(2),
		CreatedAt:  e.CreatedAt,
		Category:   e.Selection.Category,
		Type:       e.Selection.Type,
		Product:    e.Selection.Product,
		ClientId:   e.ClientID.Int64(),
		ClientName: e.ClientName,
	}
}

func toAuditEntry(e *audit.Entry) servers.AuditEntry {
	entry := servers.AuditEntry{
		Id:       e.ID(),
		Entity:   e.Entity(),
		EntityId: e.EntityID(),
		Action:   string(e.Action()),
		Actor:    e.Actor(),
		Ts:       e.Timestamp(),
	}
	if field := e.Field(); field != "" {
		entry.Field = &field
	}
	if before := e.Before(); len(before) > 0 {
		entry.Before = &before
	}
	if after := e.After(); len(after) > 0 {
		entry.After = &after
	}
	return entry
}

func toLedgerReport(r queries.LedgerReport) servers.LedgerReport {
	report := servers.LedgerReport{
		Consistent:       r.IsConsistent(),
		EntriesChecked:   r.EntriesChecked,
		BatchesChecked:   r.BatchesChecked,
		MarginMismatches: make([]servers.MarginMismatch, len(r.MarginMismatches)),
		BatchMismatches:  make([]servers.BatchMismatch, len(r.BatchMismatches)),
		DanglingEntries:  make([]int64, len(r.DanglingEntries)),
	}
	for i, m := range r.MarginMismatches {
		report.MarginMismatches[i] = servers.MarginMismatch{
			EntryId:  m.EntryID.Int64(),
			Stored:   m.Stored.StringFixed(2),
			Expected: m.Expected.StringFixed(2),
		}
	}
	for i, m := range r.BatchMismatches {
		report.BatchMismatches[i] = servers.BatchMismatch{
			BatchId:  m.BatchID.Int64(),
			Total:    m.Total.StringFixed(2),
			Computed: m.Computed.StringFixed(2),
		}
	}
	for i, id := range r.DanglingEntries {
		report.DanglingEntries[i] = id.Int64()
	}
	return report
}

func toStatistics(st queries.Statistics) servers.Statistics {
	byStatus := make(map[string]int, len(st.OrdersByStatus))
	for status, count := range st.OrdersByStatus {
		byStatus[status.String()] = count
	}
	return servers.Statistics{
		Clients:          st.Clients,
		Orders:           st.Orders,
		OrdersByStatus:   byStatus,
		UnsettledEntries: st.UnsettledEntries,
		UnsettledCost:    st.UnsettledCost.StringFixed(2),
		UnsettledMargin:  st.UnsettledMargin.StringFixed(2),
		PaymentBatches:   st.PaymentBatches,
		SettledTotal:     st.SettledTotal.StringFixed(2),
	}
}

func toCatalog(c *catalog.Catalog) servers.Catalog {
	return servers.Catalog{
		ProductHierarchy: c.Hierarchy(),
		Fabrics:          c.Fabrics(),
		Colors:           c.Colors(),
		Finishes:         c.Finishes(),
	}
}

func fromCatalog(body servers.Catalog) (*catalog.Catalog, error) {
	return catalog.NewCatalog(catalog.Hierarchy(body.ProductHierarchy), body.Fabrics, body.Colors, body.Finishes)
}
