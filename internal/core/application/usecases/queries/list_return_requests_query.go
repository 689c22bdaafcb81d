package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/pkg/guard"
)

var ErrListReturnRequestsQueryIsNotConstructed = errors.New(
	"ListReturnRequestsQuery must be created via NewListReturnRequestsQuery constructor",
)

// ListReturnRequestsQuery pages through return requests oldest first, so the
// PENDING filter reads as a review queue. A nil filter matches every request.
type ListReturnRequestsQuery struct {
	customerID *kernel.UUID
	status     *returns.Status
	page
	guard guard.ConstructorGuard
}

func NewListReturnRequestsQuery(customerID *kernel.UUID, status *returns.Status, limit, offset int) (ListReturnRequestsQuery, error) {
	if customerID != nil {
		if err := customerID.Validate(); err != nil {
			return ListReturnRequestsQuery{}, err
		}
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListReturnRequestsQuery{}, err
		}
	}
	p, err := newPage(limit, offset)
	if err != nil {
		return ListReturnRequestsQuery{}, err
	}
	return ListReturnRequestsQuery{
		customerID: customerID,
		status:     status,
		page:       p,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListReturnRequestsQuery) Validate() error {
	return q.guard.Validate(ErrListReturnRequestsQueryIsNotConstructed)
}

func (q ListReturnRequestsQuery) CustomerID() *kernel.UUID { return q.customerID }
func (q ListReturnRequestsQuery) Status() *returns.Status  { return q.status }
