package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListBatchesQueryHandler struct {
	db *gorm.DB
}

func NewListBatchesQueryHandler(db *gorm.DB) ListBatchesQueryHandler {
	return ListBatchesQueryHandler{db: db}
}

func (h ListBatchesQueryHandler) Handle(ctx context.Context, query ListBatchesQuery) ([]BatchView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).Table("batches b").Select(batchColumns)
	if staff := query.StaffID(); staff != nil {
		tx = tx.Where("b.staff_id = ?", staff.Bytes())
	}
	if status := query.Status(); status != nil {
		tx = tx.Where("b.status = ?", int(*status))
	}
	rows, err := tx.Order("b.created_at DESC, b.code").Limit(query.Limit()).Offset(query.Offset()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	batches := make([]BatchView, 0)
	for rows.Next() {
		view, scanErr := scanBatch(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		batches = append(batches, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return batches, nil
}
