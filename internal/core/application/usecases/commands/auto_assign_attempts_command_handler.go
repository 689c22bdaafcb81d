package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// AutoAssignResult counts what one run did. Skipped attempts were claimed by
// someone else between listing and assignment.
type AutoAssignResult struct {
	Assigned int
	Skipped  int
}

// AutoAssignAttemptsCommandHandler assigns stale PENDING attempts to the least
// loaded active staff member. Each attempt is assigned in its own
// transaction; losing a race to a manual claim skips the attempt.
type AutoAssignAttemptsCommandHandler struct {
	uowFactory UoWFactory
	staff      ports.StaffDirectory
	dispatcher services.AttemptDispatcher
	clock      Clock
}

func NewAutoAssignAttemptsCommandHandler(uowFactory UoWFactory, staff ports.StaffDirectory) AutoAssignAttemptsCommandHandler {
	return AutoAssignAttemptsCommandHandler{
		uowFactory: uowFactory,
		staff:      staff,
		dispatcher: services.NewAttemptDispatcher(),
		clock:      systemClock,
	}
}

func (h *AutoAssignAttemptsCommandHandler) Handle(ctx context.Context, cmd AutoAssignAttemptsCommand) (AutoAssignResult, error) {
	if err := cmd.Validate(); err != nil {
		return AutoAssignResult{}, err
	}

	staff, err := h.staff.ActiveStaff(ctx)
	if err != nil {
		return AutoAssignResult{}, err
	}
	if len(staff) == 0 {
		return AutoAssignResult{}, services.ErrNoStaffAvailable
	}

	reader := h.uowFactory.Create().ShippingAttemptRepository()
	now := h.clock()
	stale, err := reader.ListStalePending(ctx, now.Add(-cmd.OlderThan()), cmd.Limit())
	if err != nil {
		return AutoAssignResult{}, err
	}
	if len(stale) == 0 {
		return AutoAssignResult{}, nil
	}

	load, err := reader.CountActiveByStaff(ctx)
	if err != nil {
		return AutoAssignResult{}, err
	}

	var result AutoAssignResult
	for _, candidate := range stale {
		err = h.assign(ctx, candidate.ID(), staff, load)
		switch {
		case err == nil:
			result.Assigned++
		case isLostRace(err):
			result.Skipped++
		default:
			return result, err
		}
	}
	return result, nil
}

func (h *AutoAssignAttemptsCommandHandler) assign(ctx context.Context, attemptID kernel.UUID, staff []kernel.UUID, load map[kernel.UUID]int) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	attempt, err := uow.ShippingAttemptRepository().Get(ctx, attemptID)
	if err != nil {
		return err
	}
	if attempt.Status() != shipment.Pending || attempt.Assignee() != nil {
		return assignment.ErrAlreadyAssigned
	}

	now := h.clock()
	staffID, err := h.dispatcher.Dispatch(attempt, staff, load, now)
	if err != nil {
		return err
	}

	registry := services.NewStaffAssignmentRegistry(uow.AssignmentRepository())
	if err = registry.Acquire(ctx, assignment.AttemptSubject(attempt.ID()), staffID, now); err != nil {
		load[staffID]--
		return err
	}
	if err = uow.ShippingAttemptRepository().Update(ctx, attempt); err != nil {
		load[staffID]--
		return err
	}

	return uow.Commit(ctx)
}

func isLostRace(err error) bool {
	return errors.Is(err, assignment.ErrAlreadyAssigned) ||
		errors.Is(err, errs.ErrVersionIsInvalid) ||
		errors.Is(err, shipment.ErrInvalidTransition)
}
