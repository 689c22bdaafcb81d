package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// StaffAssignmentRegistry enforces that each attempt, batch or return request
// is held by at most one staff member. It runs inside the caller's unit of
// work so the holding commits or rolls back with the aggregate it guards.
type StaffAssignmentRegistry struct {
	repo ports.AssignmentRepository
}

func NewStaffAssignmentRegistry(repo ports.AssignmentRepository) StaffAssignmentRegistry {
	return StaffAssignmentRegistry{repo: repo}
}

// Acquire records staffID as the holder of subject. It succeeds when the
// subject is free or already held by staffID and fails with
// assignment.ErrAlreadyAssigned otherwise.
func (r StaffAssignmentRegistry) Acquire(ctx context.Context, subject assignment.Subject, staffID kernel.UUID, now time.Time) error {
	if err := errors.Join(subject.Validate(), staffID.Validate()); err != nil {
		return err
	}

	inserted, err := r.repo.TryInsert(ctx, assignment.Holding{Subject: subject, StaffID: staffID, AcquiredAt: now})
	if err != nil {
		return err
	}
	if inserted {
		return nil
	}

	holding, err := r.repo.Get(ctx, subject)
	if errors.Is(err, errs.ErrObjectNotFound) {
		// released between the insert and the read
		return fmt.Errorf("%w: %s changed hands, retry", assignment.ErrAlreadyAssigned, subject)
	}
	if err != nil {
		return err
	}
	if !holding.HeldBy(staffID) {
		return fmt.Errorf("%w: %s", assignment.ErrAlreadyAssigned, subject)
	}
	return nil
}

// Release frees subject. Releasing a free subject is not an error.
func (r StaffAssignmentRegistry) Release(ctx context.Context, subject assignment.Subject) error {
	if err := subject.Validate(); err != nil {
		return err
	}
	return r.repo.Delete(ctx, subject)
}

// Holder returns the current holder of subject, or nil when it is free.
func (r StaffAssignmentRegistry) Holder(ctx context.Context, subject assignment.Subject) (*kernel.UUID, error) {
	holding, err := r.repo.Get(ctx, subject)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &holding.StaffID, nil
}
