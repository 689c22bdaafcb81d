package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrListAttemptsByStaffQueryIsNotConstructed = errors.New(
	"ListAttemptsByStaffQuery must be created via NewListAttemptsByStaffQuery constructor",
)

// ListAttemptsByStaffQuery pages through the attempts a staff member holds
// or held, most recently updated first. activeOnly drops terminal attempts.
type ListAttemptsByStaffQuery struct {
	staffID    kernel.UUID
	activeOnly bool
	page
	guard guard.ConstructorGuard
}

func NewListAttemptsByStaffQuery(staffID kernel.UUID, activeOnly bool, limit, offset int) (ListAttemptsByStaffQuery, error) {
	if err := staffID.Validate(); err != nil {
		return ListAttemptsByStaffQuery{}, err
	}
	p, err := newPage(limit, offset)
	if err != nil {
		return ListAttemptsByStaffQuery{}, err
	}
	return ListAttemptsByStaffQuery{
		staffID:    staffID,
		activeOnly: activeOnly,
		page:       p,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListAttemptsByStaffQuery) Validate() error {
	return q.guard.Validate(ErrListAttemptsByStaffQueryIsNotConstructed)
}

func (q ListAttemptsByStaffQuery) StaffID() kernel.UUID { return q.staffID }
func (q ListAttemptsByStaffQuery) ActiveOnly() bool     { return q.activeOnly }
