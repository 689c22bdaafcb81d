package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// AssignReturnRequestCommandHandler takes approved requests into the warehouse
// through the staff assignment registry. Concurrent assigns produce one holder.
type AssignReturnRequestCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewAssignReturnRequestCommandHandler(uowFactory UoWFactory) AssignReturnRequestCommandHandler {
	return AssignReturnRequestCommandHandler{
		uowFactory: uowFactory,
		clock:      systemClock,
	}
}

func (h *AssignReturnRequestCommandHandler) Handle(ctx context.Context, cmd AssignReturnRequestCommand) (*returns.Request, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	request, err := h.assign(ctx, cmd)
	if errors.Is(err, errs.ErrVersionIsInvalid) {
		if current, getErr := h.uowFactory.Create().ReturnRequestRepository().Get(ctx, cmd.RequestID()); getErr == nil {
			if holder := current.AssigneeID(); holder != nil && !kernel.SameHolder(holder, cmd.StaffID()) {
				return nil, fmt.Errorf("%w: return request %s", assignment.ErrAlreadyAssigned, current.ID())
			}
		}
	}
	return request, err
}

func (h *AssignReturnRequestCommandHandler) assign(ctx context.Context, cmd AssignReturnRequestCommand) (*returns.Request, error) {
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
	if err = request.Assign(cmd.StaffID(), now); err != nil {
		return nil, err
	}

	registry := services.NewStaffAssignmentRegistry(uow.AssignmentRepository())
	if err = registry.Acquire(ctx, assignment.ReturnRequestSubject(request.ID()), cmd.StaffID(), now); err != nil {
		return nil, err
	}
	if err = uow.ReturnRequestRepository().Update(ctx, request); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return request, nil
}
