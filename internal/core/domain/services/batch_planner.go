package services

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"
)

// BatchPlanner holds the pure rules of batching: which attempts may travel
// together and how COD is aggregated when the run is closed.
type BatchPlanner struct{}

func NewBatchPlanner() BatchPlanner {
	return BatchPlanner{}
}

// Suggest filters a customer's attempts down to the ones that could be
// delivered together: PENDING, unassigned and not in a batch. Input order is kept.
func (BatchPlanner) Suggest(attempts []*shipment.Attempt) []*shipment.Attempt {
	suggested := make([]*shipment.Attempt, 0, len(attempts))
	for _, a := range attempts {
		if a.Status() == shipment.Pending && a.Assignee() == nil && !a.InBatch() {
			suggested = append(suggested, a)
		}
	}
	return suggested
}

// SelectMembers picks, for every requested order, its single eligible attempt
// for a batch owned by staffID. historyByOrder holds each order's attempts.
//
// It fails with batch.ErrIneligibleMember if any order has no eligible attempt
// or more than one, or if the orders belong to different customers. Nothing
// is mutated, so the caller can stay all-or-nothing.
func (BatchPlanner) SelectMembers(
	orderIDs []kernel.UUID,
	historyByOrder map[kernel.UUID][]*shipment.Attempt,
	staffID kernel.UUID,
) ([]*shipment.Attempt, error) {
	if len(orderIDs) == 0 {
		return nil, errs.NewValueIsRequiredError("order ids")
	}

	members := make([]*shipment.Attempt, 0, len(orderIDs))
	var customer *kernel.UUID
	var problems []error
	seen := make(map[kernel.UUID]struct{}, len(orderIDs))

	for _, orderID := range orderIDs {
		if _, dup := seen[orderID]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("order ids", fmt.Errorf("order %s listed twice", orderID))
		}
		seen[orderID] = struct{}{}

		var eligible []*shipment.Attempt
		for _, a := range historyByOrder[orderID] {
			if a.CanJoinBatch(staffID) {
				eligible = append(eligible, a)
			}
		}
		if len(eligible) != 1 {
			problems = append(problems, fmt.Errorf("%w: order %s has %d eligible attempts", batch.ErrIneligibleMember, orderID, len(eligible)))
			continue
		}

		candidate := eligible[0]
		if customer == nil {
			c := candidate.CustomerID()
			customer = &c
		} else if !customer.IsEqual(candidate.CustomerID()) {
			problems = append(problems, fmt.Errorf("%w: order %s belongs to another customer", batch.ErrIneligibleMember, orderID))
			continue
		}
		members = append(members, candidate)
	}

	if len(problems) > 0 {
		return nil, errors.Join(problems...)
	}
	return members, nil
}

// DeliveredCOD sums the collected amounts of the DELIVERED members that collected cash.
func (BatchPlanner) DeliveredCOD(members []*shipment.Attempt) (kernel.Money, error) {
	total := kernel.Zero
	for _, m := range members {
		if m.Status() != shipment.Delivered || !m.CODCollected() {
			continue
		}
		var err error
		if total, err = total.Add(m.CollectedAmount()); err != nil {
			return kernel.Zero, err
		}
	}
	return total, nil
}

// Statuses lists the member statuses for batch status derivation.
func (BatchPlanner) Statuses(members []*shipment.Attempt) []shipment.Status {
	statuses := make([]shipment.Status, 0, len(members))
	for _, m := range members {
		statuses = append(statuses, m.Status())
	}
	return statuses
}
