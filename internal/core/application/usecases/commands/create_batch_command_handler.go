package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"
)

// CreateBatchCommandHandler creates batches all-or-nothing: if any order has
// no eligible attempt, or any member is claimed concurrently, no member is
// claimed and no batch exists afterwards.
type CreateBatchCommandHandler struct {
	uowFactory UoWFactory
	planner    services.BatchPlanner
	clock      Clock
}

func NewCreateBatchCommandHandler(uowFactory UoWFactory) CreateBatchCommandHandler {
	return CreateBatchCommandHandler{
		uowFactory: uowFactory,
		planner:    services.NewBatchPlanner(),
		clock:      systemClock,
	}
}

func (h *CreateBatchCommandHandler) Handle(ctx context.Context, cmd CreateBatchCommand) (*batch.Batch, error) {
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

	attemptRepo := uow.ShippingAttemptRepository()
	history := make(map[kernel.UUID][]*shipment.Attempt, len(cmd.OrderIDs()))
	for _, orderID := range cmd.OrderIDs() {
		attempts, err := attemptRepo.ListByOrder(ctx, orderID)
		if err != nil {
			return nil, err
		}
		history[orderID] = attempts
	}

	members, err := h.planner.SelectMembers(cmd.OrderIDs(), history, cmd.StaffID())
	if err != nil {
		return nil, err
	}

	now := h.clock()
	code := batch.NewCode(now)
	memberIDs := make([]kernel.UUID, 0, len(members))
	for _, m := range members {
		memberIDs = append(memberIDs, m.ID())
	}

	b, err := batch.NewBatch(code, cmd.StaffID(), members[0].CustomerID(), memberIDs, cmd.Note(), now)
	if err != nil {
		return nil, err
	}

	registry := services.NewStaffAssignmentRegistry(uow.AssignmentRepository())
	for _, m := range members {
		if err = m.JoinBatch(code, cmd.StaffID(), now); err != nil {
			return nil, fmt.Errorf("%w: %w", batch.ErrIneligibleMember, err)
		}
		err = registry.Acquire(ctx, assignment.AttemptSubject(m.ID()), cmd.StaffID(), now)
		if errors.Is(err, assignment.ErrAlreadyAssigned) {
			return nil, fmt.Errorf("%w: order %s: %w", batch.ErrIneligibleMember, m.OrderID(), err)
		}
		if err != nil {
			return nil, err
		}
		if err = attemptRepo.Update(ctx, m); err != nil {
			return nil, err
		}
	}

	if err = registry.Acquire(ctx, assignment.BatchSubject(code), cmd.StaffID(), now); err != nil {
		return nil, err
	}
	if err = uow.BatchRepository().Add(ctx, b); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return b, nil
}
