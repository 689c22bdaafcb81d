package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// CompleteReturnRequestCommandHandler closes a request in the warehouse and
// moves the order to RETURNED in the same transaction.
type CompleteReturnRequestCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	clock      Clock
}

func NewCompleteReturnRequestCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) CompleteReturnRequestCommandHandler {
	return CompleteReturnRequestCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      systemClock,
	}
}

func (h *CompleteReturnRequestCommandHandler) Handle(ctx context.Context, cmd CompleteReturnRequestCommand) (*returns.Request, error) {
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

	request, err := uow.ReturnRequestRepository().Get(ctx, cmd.RequestID())
	if err != nil {
		return nil, err
	}

	now := h.clock()
	if err = request.Complete(cmd.StaffID(), cmd.Note(), cmd.Photos(), now); err != nil {
		return nil, err
	}
	if err = uow.ReturnRequestRepository().Update(ctx, request); err != nil {
		return nil, err
	}

	o, err := uow.OrderRepository().Get(ctx, request.OrderID())
	if err != nil {
		return nil, err
	}
	attempts, err := uow.ShippingAttemptRepository().ListByOrder(ctx, o.ID())
	if err != nil {
		return nil, err
	}
	o.MarkReturned(now)
	if _, err = services.NewOrderLedger().Sync(o, attempts, now); err != nil {
		return nil, err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	registry := services.NewStaffAssignmentRegistry(uow.AssignmentRepository())
	if err = registry.Release(ctx, assignment.ReturnRequestSubject(request.ID())); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if n, ok := returnNotification(ports.NotifyReturnReceived, o, request); ok {
		notifyAll(ctx, h.notifier, []ports.Notification{n})
	}

	return request, nil
}
