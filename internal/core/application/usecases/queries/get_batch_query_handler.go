package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetBatchQueryHandler struct {
	db *gorm.DB
}

func NewGetBatchQueryHandler(db *gorm.DB) GetBatchQueryHandler {
	return GetBatchQueryHandler{db: db}
}

func (h GetBatchQueryHandler) Handle(ctx context.Context, query GetBatchQuery) (GetBatchQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBatchQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	header, err := scanBatch(db.Raw(`
		SELECT `+batchColumns+`
		FROM batches b
		WHERE b.code = ?
	`, query.Code()).Row())
	if err != nil {
		if isNoRows(err) {
			return GetBatchQueryResponse{}, errs.NewObjectNotFoundError("batch", query.Code())
		}
		return GetBatchQueryResponse{}, err
	}

	rows, err := db.Raw(`
		SELECT `+attemptColumns+`
		FROM shipping_attempts a
		WHERE a.batch_code = ?
	`, query.Code()).Rows()
	if err != nil {
		return GetBatchQueryResponse{}, err
	}
	attempts, err := scanAttempts(rows)
	if err != nil {
		return GetBatchQueryResponse{}, err
	}

	return GetBatchQueryResponse{BatchView: header, Members: inMemberOrder(attempts, header.MemberIDs)}, nil
}

func inMemberOrder(attempts []AttemptView, members []kernel.UUID) []AttemptView {
	byID := make(map[kernel.UUID]AttemptView, len(attempts))
	for _, a := range attempts {
		byID[a.ID] = a
	}
	ordered := make([]AttemptView, 0, len(attempts))
	for _, id := range members {
		if a, ok := byID[id]; ok {
			ordered = append(ordered, a)
		}
	}
	return ordered
}
