package queries

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrListAvailableAttemptsQueryIsNotConstructed = errors.New(
	"ListAvailableAttemptsQuery must be created via NewListAvailableAttemptsQuery constructor",
)

// ListAvailableAttemptsQuery pages through PENDING attempts nobody has
// claimed, oldest first, for the staff pick list.
type ListAvailableAttemptsQuery struct {
	page
	guard guard.ConstructorGuard
}

func NewListAvailableAttemptsQuery(limit, offset int) (ListAvailableAttemptsQuery, error) {
	p, err := newPage(limit, offset)
	if err != nil {
		return ListAvailableAttemptsQuery{}, err
	}
	return ListAvailableAttemptsQuery{page: p, guard: guard.NewConstructorGuard()}, nil
}

func (q ListAvailableAttemptsQuery) Validate() error {
	return q.guard.Validate(ErrListAvailableAttemptsQueryIsNotConstructed)
}
