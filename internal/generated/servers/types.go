package servers

import (
	"encoding/json"
	"time"
)

// Defines values for ClientStanding.
const (
	ClientStandingGOOD       ClientStanding = "GOOD"
	ClientStandingDELINQUENT ClientStanding = "DELINQUENT"
)

// AuditEntry defines model for AuditEntry.
type AuditEntry struct {
	Action   string           `json:"action"`
	Actor    string           `json:"actor"`
	After    *json.RawMessage `json:"after,omitempty"`
	Before   *json.RawMessage `json:"before,omitempty"`
	Entity   string           `json:"entity"`
	EntityId string           `json:"entity_id"`
	Field    *string          `json:"field,omitempty"`
	Id       int64            `json:"id"`
	Ts       time.Time        `json:"ts"`
}

// BatchMismatch defines model for BatchMismatch.
type BatchMismatch struct {
	BatchId  int64  `json:"batch_id"`
	Computed string `json:"computed"`
	Total    string `json:"total"`
}

// Catalog defines model for Catalog.
type Catalog struct {
	Colors           []string                       `json:"colors"`
	Fabrics          []string                       `json:"fabrics"`
	Finishes         []string                       `json:"finishes"`
	ProductHierarchy map[string]map[string][]string `json:"product_hierarchy"`
}

// CatalogUpdated defines model for CatalogUpdated.
type CatalogUpdated struct {
	Changed []string `json:"changed"`
}

// ClientStanding defines model for NewClient.Standing.
type ClientStanding string

// Created defines model for Created.
type Created struct {
	Id int64 `json:"id"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Health defines model for Health.
type Health struct {
	Status string `json:"status"`
}

// LedgerReport defines model for LedgerReport.
type LedgerReport struct {
	BatchMismatches  []BatchMismatch  `json:"batch_mismatches"`
	BatchesChecked   int              `json:"batches_checked"`
	Consistent       bool             `json:"consistent"`
	DanglingEntries  []int64          `json:"dangling_entries"`
	EntriesChecked   int              `json:"entries_checked"`
	MarginMismatches []MarginMismatch `json:"margin_mismatches"`
}

// MarginMismatch defines model for MarginMismatch.
type MarginMismatch struct {
	EntryId  int64  `json:"entry_id"`
	Expected string `json:"expected"`
	Stored   string `json:"stored"`
}

// NewClient defines model for NewClient.
type NewClient struct {
	Address  *string         `json:"address,omitempty"`
	Name     string          `json:"name"`
	Phone    *string         `json:"phone,omitempty"`
	Standing *ClientStanding `json:"standing,omitempty"`
	TaxId    *string         `json:"tax_id,omitempty"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	Category  string    `json:"category"`
	ClientId  int64     `json:"client_id"`
	FreeNotes *string   `json:"free_notes,omitempty"`
	Notes     *Notes    `json:"notes,omitempty"`
	Photos    *[]string `json:"photos,omitempty"`
	PriceCost string    `json:"price_cost"`
	PriceSale string    `json:"price_sale"`
	Product   string    `json:"product"`
	Type      string    `json:"type"`
}

// NewPaymentBatch defines model for NewPaymentBatch.
type NewPaymentBatch struct {
	OrderIds []int64 `json:"order_ids"`
}

// NonConformity defines model for NonConformity.
type NonConformity struct {
	Count       int       `json:"count"`
	CreatedAt   time.Time `json:"created_at"`
	Description string    `json:"description"`
	Id          int64     `json:"id"`
	Kind        string    `json:"kind"`
	Photos      []string  `json:"photos,omitempty"`
}

// NonConformityReport defines model for NonConformityReport.
type NonConformityReport struct {
	Count       *int      `json:"count,omitempty"`
	Description string    `json:"description"`
	Kind        string    `json:"kind"`
	Photos      *[]string `json:"photos,omitempty"`
}

// Notes is the structured notes document. Unknown keys are kept.
type Notes = json.RawMessage

// OrphanCleanup defines model for OrphanCleanup.
type OrphanCleanup struct {
	MinAgeHours *int `json:"min_age_hours,omitempty"`
	Remove      bool `json:"remove"`
}

// OrphanReport defines model for OrphanReport.
type OrphanReport struct {
	Orphans []string `json:"orphans"`
	Removed int      `json:"removed"`
	Scanned int      `json:"scanned"`
}

// Order defines model for Order.
type Order struct {
	Category  string    `json:"category"`
	ClientId  int64     `json:"client_id"`
	CreatedAt time.Time `json:"created_at"`
	FreeNotes string    `json:"free_notes,omitempty"`
	Id        int64     `json:"id"`
	Notes     Notes     `json:"notes,omitempty"`
	Photos    []string  `json:"photos,omitempty"`
	PriceCost string    `json:"price_cost"`
	PriceSale string    `json:"price_sale"`
	Product   string    `json:"product"`
	Status    string    `json:"status"`
	Type      string    `json:"type"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// OrderDetails defines model for OrderDetails.
type OrderDetails struct {
	OrderSummary
	FreeNotes       string          `json:"free_notes,omitempty"`
	NonConformities []NonConformity `json:"nonconformities"`
	Notes           Notes           `json:"notes,omitempty"`
	Photos          []string        `json:"photos,omitempty"`
	Shipments       []Shipment      `json:"shipments"`
	Version         int             `json:"version"`
}

// OrderEdit defines model for OrderEdit.
type OrderEdit struct {
	FreeNotes *string `json:"free_notes,omitempty"`
	Notes     *Notes  `json:"notes,omitempty"`
	PriceCost *string `json:"price_cost,omitempty"`
	PriceSale *string `json:"price_sale,omitempty"`
}

// OrderSummary defines model for OrderSummary.
type OrderSummary struct {
	Category   string    `json:"category"`
	ClientId   int64     `json:"client_id"`
	ClientName string    `json:"client_name"`
	CreatedAt  time.Time `json:"created_at"`
	Id         int64     `json:"id"`
	PriceCost  string    `json:"price_cost"`
	PriceSale  string    `json:"price_sale"`
	Product    string    `json:"product"`
	Status     string    `json:"status"`
	Type       string    `json:"type"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PaymentBatch defines model for PaymentBatch.
type PaymentBatch struct {
	CreatedAt time.Time `json:"created_at"`
	Id        int64     `json:"id"`
	Total     string    `json:"total"`
}

// PriceRevision defines model for PriceRevision.
type PriceRevision struct {
	PriceCost *string `json:"price_cost,omitempty"`
	PriceSale *string `json:"price_sale,omitempty"`
}

// Reference defines model for Reference.
type Reference struct {
	Ref string `json:"ref"`
}

// Shipment defines model for Shipment.
type Shipment struct {
	DocumentRef string    `json:"document_ref,omitempty"`
	Id          int64     `json:"id"`
	Medium      string    `json:"medium"`
	SentAt      time.Time `json:"sent_at"`
}

// Statistics defines model for Statistics.
type Statistics struct {
	Clients          int            `json:"clients"`
	Orders           int            `json:"orders"`
	OrdersByStatus   map[string]int `json:"orders_by_status"`
	PaymentBatches   int            `json:"payment_batches"`
	SettledTotal     string         `json:"settled_total"`
	UnsettledCost    string         `json:"unsettled_cost"`
	UnsettledEntries int            `json:"unsettled_entries"`
	UnsettledMargin  string         `json:"unsettled_margin"`
}

// TransitionRequest defines model for TransitionRequest.
type TransitionRequest struct {
	Medium        *string              `json:"medium,omitempty"`
	Nonconformity *NonConformityReport `json:"nonconformity,omitempty"`
	PriceRevision *PriceRevision       `json:"price_revision,omitempty"`
	Trigger       string               `json:"trigger"`
}

// UnsettledEntry defines model for UnsettledEntry.
type UnsettledEntry struct {
	Category   string    `json:"category"`
	ClientId   int64     `json:"client_id"`
	ClientName string    `json:"client_name"`
	Cost       string    `json:"cost"`
	CreatedAt  time.Time `json:"created_at"`
	EntryId    int64     `json:"entry_id"`
	Margin     string    `json:"margin"`
	OrderId    int64     `json:"order_id"`
	Product    string    `json:"product"`
	Sale       string    `json:"sale"`
	Type       string    `json:"type"`
}

// OrderId defines model for OrderId.
type OrderId = int64

// ListAuditEntriesParams defines parameters for ListAuditEntries.
type ListAuditEntriesParams struct {
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// ListUnsettledEntriesParams defines parameters for ListUnsettledEntries.
type ListUnsettledEntriesParams struct {
	From *time.Time `form:"from,omitempty" json:"from,omitempty"`
	To   *time.Time `form:"to,omitempty" json:"to,omitempty"`
}

// ListOrdersParams defines parameters for ListOrders.
type ListOrdersParams struct {
	Status *string `form:"status,omitempty" json:"status,omitempty"`
}
