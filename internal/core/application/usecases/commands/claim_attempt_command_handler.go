package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// ClaimAttemptCommandHandler handles first-come claims on PENDING attempts.
//
// Two staff members claiming the same attempt race on the registry row and on
// the attempt's version. Exactly one wins; the other gets
// assignment.ErrAlreadyAssigned.
type ClaimAttemptCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewClaimAttemptCommandHandler(uowFactory UoWFactory) ClaimAttemptCommandHandler {
	return ClaimAttemptCommandHandler{
		uowFactory: uowFactory,
		clock:      systemClock,
	}
}

func (h *ClaimAttemptCommandHandler) Handle(ctx context.Context, cmd ClaimAttemptCommand) (*shipment.Attempt, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	attempt, err := h.claim(ctx, cmd)
	if errors.Is(err, errs.ErrVersionIsInvalid) {
		return nil, h.explainLostRace(ctx, cmd, err)
	}
	return attempt, err
}

func (h *ClaimAttemptCommandHandler) claim(ctx context.Context, cmd ClaimAttemptCommand) (*shipment.Attempt, error) {
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
	if err = attempt.Claim(cmd.StaffID(), now); err != nil {
		return nil, err
	}

	registry := services.NewStaffAssignmentRegistry(uow.AssignmentRepository())
	if err = registry.Acquire(ctx, assignment.AttemptSubject(attempt.ID()), cmd.StaffID(), now); err != nil {
		return nil, err
	}

	if err = uow.ShippingAttemptRepository().Update(ctx, attempt); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return attempt, nil
}

// explainLostRace re-reads the attempt after a version conflict and reports
// AlreadyAssigned when someone else now holds it.
func (h *ClaimAttemptCommandHandler) explainLostRace(ctx context.Context, cmd ClaimAttemptCommand, cause error) error {
	attempt, err := h.uowFactory.Create().ShippingAttemptRepository().Get(ctx, cmd.AttemptID())
	if err != nil {
		return cause
	}
	if holder := attempt.Assignee(); holder != nil && !kernel.SameHolder(holder, cmd.StaffID()) {
		return fmt.Errorf("%w: attempt %s", assignment.ErrAlreadyAssigned, attempt.ID())
	}
	return cause
}
