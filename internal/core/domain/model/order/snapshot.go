package order

import "time"

// Snapshot is the serialized view of an order written to the audit trail and handed
// to the document generator. Prices are decimal strings with two places.
type Snapshot struct {
	ID        int64           `json:"id"`
	ClientID  int64           `json:"client_id"`
	Category  string          `json:"category"`
	Type      string          `json:"type"`
	Product   string          `json:"product"`
	PriceCost string          `json:"price_cost"`
	PriceSale string          `json:"price_sale"`
	Notes     StructuredNotes `json:"notes"`
	FreeNotes string          `json:"free_notes"`
	Photos    []string        `json:"photos"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Shipments and NonConformities are filled in only for deletion records.
	Shipments       []ShipmentSnapshot      `json:"shipments,omitempty"`
	NonConformities []NonConformitySnapshot `json:"nonconformities,omitempty"`
}

type ShipmentSnapshot struct {
	ID          int64     `json:"id"`
	Medium      string    `json:"medium"`
	SentAt      time.Time `json:"sent_at"`
	DocumentRef string    `json:"document_ref"`
}

type NonConformitySnapshot struct {
	ID          int64     `json:"id"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	Photos      []string  `json:"photos"`
	Count       int       `json:"count"`
	CreatedAt   time.Time `json:"created_at"`
}
