package services

import (
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
)

// OrderLedger derives an order's externally visible status from the history
// of its shipping attempts. The status is never authored any other way.
//
// Precedence, applied to the most recent attempt by creation time:
//   - no attempts: the upstream rejection/cancellation if one was recorded,
//     otherwise the pre-shipping status the order was registered in
//   - DELIVERED: DELIVERED, or RETURNED once a return request completed
//   - any non-terminal attempt: SHIPPING
//   - FAILED, RETURNED or CANCELLED: PROCESSING, eligible for a new attempt
//
// Recompute is pure and idempotent.
type OrderLedger struct{}

func NewOrderLedger() OrderLedger {
	return OrderLedger{}
}

// Recompute returns the status o should have given attempts. The slice is not modified.
func (OrderLedger) Recompute(o *order.Order, attempts []*shipment.Attempt) order.Status {
	if len(attempts) == 0 {
		if o.Status().IsUpstreamDecision() || o.Status().IsPreShipping() {
			return o.Status()
		}
		return order.Processing
	}

	for _, a := range attempts {
		if !a.Status().IsTerminal() {
			return order.Shipping
		}
	}

	latest := slices.MaxFunc(attempts, func(a, b *shipment.Attempt) int {
		return a.CreatedAt().Compare(b.CreatedAt())
	})
	if latest.Status() == shipment.Delivered {
		if o.IsReturned() {
			return order.Returned
		}
		return order.Delivered
	}
	return order.Processing
}

// Sync recomputes and stores the status on o, reporting whether it changed.
func (l OrderLedger) Sync(o *order.Order, attempts []*shipment.Attempt, now time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	return o.SyncStatus(l.Recompute(o, attempts), now)
}
