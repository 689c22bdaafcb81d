package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrSuggestBatchQueryIsNotConstructed = errors.New("SuggestBatchQuery must be created via NewSuggestBatchQuery constructor")

// SuggestBatchQuery lists a customer's attempts that could travel together
// in one batch. It has no side effects.
type SuggestBatchQuery struct {
	customerID kernel.UUID
	guard      guard.ConstructorGuard
}

func NewSuggestBatchQuery(customerID kernel.UUID) (SuggestBatchQuery, error) {
	if err := customerID.Validate(); err != nil {
		return SuggestBatchQuery{}, err
	}
	return SuggestBatchQuery{customerID: customerID, guard: guard.NewConstructorGuard()}, nil
}

func (q SuggestBatchQuery) Validate() error {
	return q.guard.Validate(ErrSuggestBatchQueryIsNotConstructed)
}

func (q SuggestBatchQuery) CustomerID() kernel.UUID { return q.customerID }
