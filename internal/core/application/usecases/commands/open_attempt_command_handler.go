package commands

import (
	"context"
	"fmt"
	"slices"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
)

// OpenAttemptCommandHandler opens shipping attempts.
//
// An order has at most one non-terminal attempt, and a delivered order gets
// no new attempt. The order moves to SHIPPING in the same transaction.
type OpenAttemptCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewOpenAttemptCommandHandler(uowFactory UoWFactory) OpenAttemptCommandHandler {
	return OpenAttemptCommandHandler{
		uowFactory: uowFactory,
		clock:      systemClock,
	}
}

func (h *OpenAttemptCommandHandler) Handle(ctx context.Context, cmd OpenAttemptCommand) (*shipment.Attempt, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if o.HasUpstreamDecision() {
		return nil, fmt.Errorf("%w: order %s is %s", ErrOrderClosed, o.ID(), o.Status())
	}

	history, err := uow.ShippingAttemptRepository().ListByOrder(ctx, o.ID())
	if err != nil {
		return nil, err
	}
	if err = checkCanOpen(history); err != nil {
		return nil, err
	}

	now := h.clock()
	attempt, err := shipment.NewAttempt(kernel.NewUUID(), o.ID(), o.CustomerID(), o.Total(), cmd.EstimatedDelivery(), now)
	if err != nil {
		return nil, err
	}
	if err = uow.ShippingAttemptRepository().Add(ctx, attempt); err != nil {
		return nil, err
	}

	if _, err = syncOrder(ctx, uow, o.ID(), now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return attempt, nil
}

func checkCanOpen(history []*shipment.Attempt) error {
	if len(history) == 0 {
		return nil
	}
	for _, a := range history {
		if !a.Status().IsTerminal() {
			return fmt.Errorf("%w: attempt %s is %s", shipment.ErrAttemptAlreadyActive, a.ID(), a.Status())
		}
	}
	latest := slices.MaxFunc(history, func(a, b *shipment.Attempt) int {
		return a.CreatedAt().Compare(b.CreatedAt())
	})
	if latest.Status() == shipment.Delivered {
		return fmt.Errorf("%w: attempt %s", shipment.ErrAlreadyDelivered, latest.ID())
	}
	return nil
}
