package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/order"
	"textile/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns *errs.ObjectNotFoundError when the order does not exist.
// Shipments and nonconformities are ordered oldest first.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderDetails, error) {
	if err := query.Validate(); err != nil {
		return OrderDetails{}, err
	}

	db := h.db.WithContext(ctx)
	id := query.OrderID().Int64()

	row := db.Raw(fmt.Sprintf(`
		SELECT %s, o.notes, o.free_notes, o.photos, o.version
		FROM orders o
		LEFT JOIN clients c ON c.id = o.client_id
		WHERE o.id = ?`, orderSummaryColumns), id).Row()

	var (
		notes, photos []byte
		details       OrderDetails
	)
	summary, err := scanOrderSummary(row, &notes, &details.FreeNotes, &photos, &details.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderDetails{}, errs.NewObjectNotFoundError("order", id)
		}
		return OrderDetails{}, err
	}
	details.OrderSummary = summary

	if err = json.Unmarshal(notes, &details.Notes); err != nil {
		return OrderDetails{}, fmt.Errorf("order %d notes: %w", id, err)
	}
	if details.Photos, err = decodePhotos(photos); err != nil {
		return OrderDetails{}, fmt.Errorf("order %d photos: %w", id, err)
	}

	if details.Shipments, err = h.shipments(db, id); err != nil {
		return OrderDetails{}, err
	}
	if details.NonConformities, err = h.nonConformities(db, id); err != nil {
		return OrderDetails{}, err
	}

	return details, nil
}

func (h GetOrderQueryHandler) shipments(db *gorm.DB, orderID int64) ([]ShipmentView, error) {
	rows, err := db.Raw(`
		SELECT id, medium, sent_at, document_ref
		FROM shipments
		WHERE order_id = ?
		ORDER BY sent_at, id`, orderID).Rows()
	if err != nil {
		return nil, storageError("list shipments", err)
	}
	defer rows.Close()

	out := make([]ShipmentView, 0)
	for rows.Next() {
		var (
			id int64
			v  ShipmentView
		)
		if err = rows.Scan(&id, &v.Medium, &v.SentAt, &v.DocumentRef); err != nil {
			return nil, storageError("scan shipment", err)
		}
		if v.ID, err = kernel.NewID(id); err != nil {
			return nil, err
		}
		v.SentAt = v.SentAt.UTC()
		out = append(out, v)
	}
	return out, storageError("list shipments", rows.Err())
}

func (h GetOrderQueryHandler) nonConformities(db *gorm.DB, orderID int64) ([]NonConformityView, error) {
	rows, err := db.Raw(`
		SELECT id, kind, description, photos, count, created_at
		FROM nonconformities
		WHERE order_id = ?
		ORDER BY created_at, id`, orderID).Rows()
	if err != nil {
		return nil, storageError("list nonconformities", err)
	}
	defer rows.Close()

	out := make([]NonConformityView, 0)
	for rows.Next() {
		var (
			id        int64
			kind      string
			photos    []byte
			createdAt time.Time
			v         NonConformityView
		)
		if err = rows.Scan(&id, &kind, &v.Description, &photos, &v.Count, &createdAt); err != nil {
			return nil, storageError("scan nonconformity", err)
		}
		if v.ID, err = kernel.NewID(id); err != nil {
			return nil, err
		}
		if v.Photos, err = decodePhotos(photos); err != nil {
			return nil, err
		}
		v.Kind = order.NonConformityKind(kind)
		v.CreatedAt = createdAt.UTC()
		out = append(out, v)
	}
	return out, storageError("list nonconformities", rows.Err())
}

func decodePhotos(raw []byte) (order.Photos, error) {
	photos := order.Photos{}
	if len(raw) == 0 {
		return photos, nil
	}
	if err := json.Unmarshal(raw, &photos); err != nil {
		return nil, err
	}
	return photos, nil
}
