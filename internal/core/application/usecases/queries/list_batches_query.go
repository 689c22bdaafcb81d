package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrListBatchesQueryIsNotConstructed = errors.New("ListBatchesQuery must be created via NewListBatchesQuery constructor")

// ListBatchesQuery pages through batch headers, newest first. A nil filter
// matches every batch.
type ListBatchesQuery struct {
	staffID *kernel.UUID
	status  *batch.Status
	page
	guard guard.ConstructorGuard
}

func NewListBatchesQuery(staffID *kernel.UUID, status *batch.Status, limit, offset int) (ListBatchesQuery, error) {
	if staffID != nil {
		if err := staffID.Validate(); err != nil {
			return ListBatchesQuery{}, err
		}
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListBatchesQuery{}, err
		}
	}
	p, err := newPage(limit, offset)
	if err != nil {
		return ListBatchesQuery{}, err
	}
	return ListBatchesQuery{staffID: staffID, status: status, page: p, guard: guard.NewConstructorGuard()}, nil
}

func (q ListBatchesQuery) Validate() error {
	return q.guard.Validate(ErrListBatchesQueryIsNotConstructed)
}

func (q ListBatchesQuery) StaffID() *kernel.UUID { return q.staffID }
func (q ListBatchesQuery) Status() *batch.Status { return q.status }
