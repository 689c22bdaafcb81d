package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// TransitionAttemptCommandHandler applies one lifecycle step to an attempt.
//
// In one transaction it writes the attempt, records a COD collection for a
// stand-alone delivery, releases the holding on terminal states, recomputes
// the order and refreshes the batch the attempt belongs to. The customer is
// notified after commit.
type TransitionAttemptCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	clock      Clock
}

func NewTransitionAttemptCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) TransitionAttemptCommandHandler {
	return TransitionAttemptCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      systemClock,
	}
}

func (h *TransitionAttemptCommandHandler) Handle(ctx context.Context, cmd TransitionAttemptCommand) (*shipment.Attempt, error) {
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

	attempt, err := uow.ShippingAttemptRepository().Get(ctx, cmd.AttemptID())
	if err != nil {
		return nil, err
	}

	now := h.clock()
	o, err := applyTransition(ctx, uow, attempt, cmd.Target(), cmd.StaffID(), cmd.Payload(), now)
	if err != nil {
		return nil, err
	}

	if attempt.InBatch() {
		if _, err = refreshBatch(ctx, uow, attempt.BatchCode(), now); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if n, ok := attemptNotification(o, attempt); ok {
		notifyAll(ctx, h.notifier, []ports.Notification{n})
	}

	return attempt, nil
}

// refreshBatch re-derives the batch status from its members.
func refreshBatch(ctx context.Context, uow UoW, code string, now time.Time) (*batch.Batch, error) {
	b, err := uow.BatchRepository().Get(ctx, code)
	if err != nil {
		return nil, err
	}
	members, err := uow.ShippingAttemptRepository().ListByBatch(ctx, code)
	if err != nil {
		return nil, err
	}
	if !b.Refresh(services.NewBatchPlanner().Statuses(members), now) {
		return b, nil
	}
	if err = uow.BatchRepository().Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
