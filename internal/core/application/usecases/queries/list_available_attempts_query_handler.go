package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/shipment"

	"gorm.io/gorm"
)

type ListAvailableAttemptsQueryHandler struct {
	db *gorm.DB
}

func NewListAvailableAttemptsQueryHandler(db *gorm.DB) ListAvailableAttemptsQueryHandler {
	return ListAvailableAttemptsQueryHandler{db: db}
}

func (h ListAvailableAttemptsQueryHandler) Handle(ctx context.Context, query ListAvailableAttemptsQuery) ([]AttemptView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+attemptColumns+`
		FROM shipping_attempts a
		WHERE a.status = ?
			AND a.assignee IS NULL
			AND a.batch_code IS NULL
		ORDER BY a.created_at, a.id
		LIMIT ? OFFSET ?
	`, int(shipment.Pending), query.Limit(), query.Offset()).Rows()
	if err != nil {
		return nil, err
	}

	return scanAttempts(rows)
}
