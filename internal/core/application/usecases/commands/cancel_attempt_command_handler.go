package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"
)

// CancelAttemptCommandHandler cancels attempts without an assignee check.
type CancelAttemptCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewCancelAttemptCommandHandler(uowFactory UoWFactory) CancelAttemptCommandHandler {
	return CancelAttemptCommandHandler{
		uowFactory: uowFactory,
		clock:      systemClock,
	}
}

func (h *CancelAttemptCommandHandler) Handle(ctx context.Context, cmd CancelAttemptCommand) (*shipment.Attempt, error) {
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
	if err = attempt.Cancel(cmd.Reason(), now); err != nil {
		return nil, err
	}
	if err = uow.ShippingAttemptRepository().Update(ctx, attempt); err != nil {
		return nil, err
	}

	registry := services.NewStaffAssignmentRegistry(uow.AssignmentRepository())
	if err = registry.Release(ctx, assignment.AttemptSubject(attempt.ID())); err != nil {
		return nil, err
	}

	if _, err = syncOrder(ctx, uow, attempt.OrderID(), now); err != nil {
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

	return attempt, nil
}
