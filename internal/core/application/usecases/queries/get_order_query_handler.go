package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads orders with raw SQL.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound for an unknown order. Attempts and
// return requests are listed oldest first.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	id := query.OrderID().Bytes()

	response, err := h.readOrder(db, id)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if response.Items, err = h.readItems(db, id); err != nil {
		return GetOrderQueryResponse{}, err
	}

	rows, err := db.Raw(`
		SELECT `+attemptColumns+`
		FROM shipping_attempts a
		WHERE a.order_id = ?
		ORDER BY a.created_at, a.id
	`, id).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	if response.Attempts, err = scanAttempts(rows); err != nil {
		return GetOrderQueryResponse{}, err
	}

	if response.ReturnRequests, err = h.readReturnRequests(db, id); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}

func (h GetOrderQueryHandler) readOrder(db *gorm.DB, id uuid.UUID) (GetOrderQueryResponse, error) {
	var (
		response          GetOrderQueryResponse
		orderID, customer uuid.UUID
		processedBy       *uuid.UUID
		status            int
	)

	row := db.Raw(`
		SELECT
			id,
			customer_id,
			COALESCE(contact_phone, ''),
			status,
			total,
			COALESCE(upstream_reason, ''),
			processed_by,
			returned_at,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, id).Row()
	err := row.Scan(
		&orderID,
		&customer,
		&response.ContactPhone,
		&status,
		&response.Total,
		&response.UpstreamReason,
		&processedBy,
		&response.ReturnedAt,
		&response.CreatedAt,
		&response.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", id.String())
		}
		return GetOrderQueryResponse{}, err
	}

	if response.ID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if response.CustomerID, err = kernel.UUIDFromBytes(customer[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if response.ProcessedBy, err = kernel.UUIDFromOptional(processedBy); err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.Status = order.Status(status).String()

	return response, nil
}

func (h GetOrderQueryHandler) readItems(db *gorm.DB, id uuid.UUID) ([]LineItemView, error) {
	rows, err := db.Raw(`
		SELECT product_id, quantity, unit_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, id).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]LineItemView, 0)
	for rows.Next() {
		var item LineItemView
		if err = rows.Scan(&item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (h GetOrderQueryHandler) readReturnRequests(db *gorm.DB, id uuid.UUID) ([]ReturnRequestView, error) {
	rows, err := db.Raw(`
		SELECT `+returnRequestColumns+`
		FROM return_requests r
		WHERE r.order_id = ?
		ORDER BY r.created_at, r.id
	`, id).Rows()
	if err != nil {
		return nil, err
	}

	return scanReturnRequests(rows)
}
