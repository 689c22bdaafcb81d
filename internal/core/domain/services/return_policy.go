package services

import (
	"fmt"
	"slices"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/domain/model/shipment"
)

// ReturnPolicy decides whether a customer may open a return request.
type ReturnPolicy struct{}

func NewReturnPolicy() ReturnPolicy {
	return ReturnPolicy{}
}

// CheckOpen returns the delivered attempt a new request will follow.
//
// Errors:
//   - returns.ErrNotOrderOwner if customerID does not own the order
//   - returns.ErrNotEligible unless the most recent attempt is DELIVERED
//   - returns.ErrDuplicateRequest if a non-terminal request exists;
//     rejected and cancelled requests do not block
func (ReturnPolicy) CheckOpen(
	o *order.Order,
	customerID kernel.UUID,
	attempts []*shipment.Attempt,
	existing []*returns.Request,
) (*shipment.Attempt, error) {
	if !o.IsOwnedBy(customerID) {
		return nil, fmt.Errorf("%w: order %s", returns.ErrNotOrderOwner, o.ID())
	}
	if len(attempts) == 0 {
		return nil, fmt.Errorf("%w: order %s has no shipping attempt", returns.ErrNotEligible, o.ID())
	}

	latest := slices.MaxFunc(attempts, func(a, b *shipment.Attempt) int {
		return a.CreatedAt().Compare(b.CreatedAt())
	})
	if latest.Status() != shipment.Delivered {
		return nil, fmt.Errorf("%w: latest attempt is %s", returns.ErrNotEligible, latest.Status())
	}
	if o.IsReturned() {
		return nil, fmt.Errorf("%w: order %s was already returned", returns.ErrNotEligible, o.ID())
	}

	for _, r := range existing {
		if r.IsActive() {
			return nil, fmt.Errorf("%w: request %s is %s", returns.ErrDuplicateRequest, r.ID(), r.Status())
		}
	}
	return latest, nil
}
