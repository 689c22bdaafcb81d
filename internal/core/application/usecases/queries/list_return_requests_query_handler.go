package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListReturnRequestsQueryHandler struct {
	db *gorm.DB
}

func NewListReturnRequestsQueryHandler(db *gorm.DB) ListReturnRequestsQueryHandler {
	return ListReturnRequestsQueryHandler{db: db}
}

func (h ListReturnRequestsQueryHandler) Handle(ctx context.Context, query ListReturnRequestsQuery) ([]ReturnRequestView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).Table("return_requests r").Select(returnRequestColumns)
	if customer := query.CustomerID(); customer != nil {
		tx = tx.Where("r.customer_id = ?", customer.Bytes())
	}
	if status := query.Status(); status != nil {
		tx = tx.Where("r.status = ?", int(*status))
	}
	rows, err := tx.Order("r.created_at, r.id").Limit(query.Limit()).Offset(query.Offset()).Rows()
	if err != nil {
		return nil, err
	}

	return scanReturnRequests(rows)
}
