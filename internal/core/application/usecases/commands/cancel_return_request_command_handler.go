package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/domain/services"
)

// CancelReturnRequestCommandHandler withdraws a request from any non-terminal
// state and frees its warehouse assignee.
type CancelReturnRequestCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewCancelReturnRequestCommandHandler(uowFactory UoWFactory) CancelReturnRequestCommandHandler {
	return CancelReturnRequestCommandHandler{
		uowFactory: uowFactory,
		clock:      systemClock,
	}
}

func (h *CancelReturnRequestCommandHandler) Handle(ctx context.Context, cmd CancelReturnRequestCommand) (*returns.Request, error) {
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
	if err = request.Cancel(cmd.CustomerID(), h.clock()); err != nil {
		return nil, err
	}
	if err = uow.ReturnRequestRepository().Update(ctx, request); err != nil {
		return nil, err
	}

	registry := services.NewStaffAssignmentRegistry(uow.AssignmentRepository())
	if err = registry.Release(ctx, assignment.ReturnRequestSubject(request.ID())); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return request, nil
}
