package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/shipment"

	"gorm.io/gorm"
)

type ListAttemptsByStaffQueryHandler struct {
	db *gorm.DB
}

func NewListAttemptsByStaffQueryHandler(db *gorm.DB) ListAttemptsByStaffQueryHandler {
	return ListAttemptsByStaffQueryHandler{db: db}
}

func (h ListAttemptsByStaffQueryHandler) Handle(ctx context.Context, query ListAttemptsByStaffQuery) ([]AttemptView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	terminal := []int{int(shipment.Delivered), int(shipment.Failed), int(shipment.Returned), int(shipment.Cancelled)}
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+attemptColumns+`
		FROM shipping_attempts a
		WHERE a.assignee = ?
			AND (NOT ? OR a.status NOT IN ?)
		ORDER BY a.updated_at DESC, a.id
		LIMIT ? OFFSET ?
	`, query.StaffID().Bytes(), query.ActiveOnly(), terminal, query.Limit(), query.Offset()).Rows()
	if err != nil {
		return nil, err
	}

	return scanAttempts(rows)
}
