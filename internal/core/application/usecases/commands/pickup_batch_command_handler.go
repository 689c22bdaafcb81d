package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// pickupPath is the route every member takes from ASSIGNED to the customer's door.
var pickupPath = []shipment.Status{shipment.PickedUp, shipment.InTransit, shipment.OutForDelivery}

// PickupBatchResult is the batch after pickup together with its members.
type PickupBatchResult struct {
	Batch   *batch.Batch
	Members []*shipment.Attempt
}

// PickupBatchCommandHandler walks every member ASSIGNED -> PICKED_UP ->
// IN_TRANSIT -> OUT_FOR_DELIVERY in one transaction. If any member is not
// ASSIGNED nothing changes.
type PickupBatchCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	planner    services.BatchPlanner
	clock      Clock
}

func NewPickupBatchCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) PickupBatchCommandHandler {
	return PickupBatchCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		planner:    services.NewBatchPlanner(),
		clock:      systemClock,
	}
}

func (h *PickupBatchCommandHandler) Handle(ctx context.Context, cmd PickupBatchCommand) (PickupBatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return PickupBatchResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return PickupBatchResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	b, err := uow.BatchRepository().Get(ctx, cmd.BatchCode())
	if err != nil {
		return PickupBatchResult{}, err
	}
	if err = b.CheckOwner(cmd.StaffID()); err != nil {
		return PickupBatchResult{}, err
	}

	members, err := uow.ShippingAttemptRepository().ListByBatch(ctx, b.Code())
	if err != nil {
		return PickupBatchResult{}, err
	}
	if err = checkAllAssigned(b, members); err != nil {
		return PickupBatchResult{}, err
	}

	now := h.clock()
	orders := make(map[kernel.UUID]*order.Order, len(members))
	for _, m := range members {
		for _, step := range pickupPath {
			if err = m.Transition(step, cmd.StaffID(), shipment.Payload{}, now); err != nil {
				return PickupBatchResult{}, fmt.Errorf("%w: %w", batch.ErrPartialPickupRejected, err)
			}
		}
		if err = uow.ShippingAttemptRepository().Update(ctx, m); err != nil {
			return PickupBatchResult{}, err
		}
		if orders[m.OrderID()], err = syncOrder(ctx, uow, m.OrderID(), now); err != nil {
			return PickupBatchResult{}, err
		}
	}

	b.Refresh(h.planner.Statuses(members), now)
	if err = uow.BatchRepository().Update(ctx, b); err != nil {
		return PickupBatchResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return PickupBatchResult{}, err
	}

	notifications := make([]ports.Notification, 0, len(members))
	for _, m := range members {
		if n, ok := attemptNotification(orders[m.OrderID()], m); ok {
			notifications = append(notifications, n)
		}
	}
	notifyAll(ctx, h.notifier, notifications)

	return PickupBatchResult{Batch: b, Members: members}, nil
}

func checkAllAssigned(b *batch.Batch, members []*shipment.Attempt) error {
	if len(members) != len(b.Members()) {
		return fmt.Errorf("%w: %d of %d members found", batch.ErrPartialPickupRejected, len(members), len(b.Members()))
	}

	var problems []error
	for _, m := range members {
		if m.Status() != shipment.Assigned {
			problems = append(problems, fmt.Errorf("%w: attempt %s is %s", batch.ErrPartialPickupRejected, m.ID(), m.Status()))
		}
	}
	return errors.Join(problems...)
}
