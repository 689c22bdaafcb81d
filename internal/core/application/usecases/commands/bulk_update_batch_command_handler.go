package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
)

// MemberResult reports the outcome for one order of a bulk update. Err is nil
// on success; Status is the member's status after the attempt either way.
type MemberResult struct {
	OrderID   kernel.UUID
	AttemptID *kernel.UUID
	Status    shipment.Status
	Err       error
}

// BulkUpdateResult holds the refreshed batch and one result per requested order.
type BulkUpdateResult struct {
	Batch   *batch.Batch
	Results []MemberResult
}

// Failed counts the members whose update was rejected.
func (r BulkUpdateResult) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// BulkUpdateBatchCommandHandler runs every member update in its own
// transaction, so one rejected member never undoes the others. The batch
// status is refreshed at the end.
type BulkUpdateBatchCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	clock      Clock
}

func NewBulkUpdateBatchCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) BulkUpdateBatchCommandHandler {
	return BulkUpdateBatchCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      systemClock,
	}
}

func (h *BulkUpdateBatchCommandHandler) Handle(ctx context.Context, cmd BulkUpdateBatchCommand) (BulkUpdateResult, error) {
	if err := cmd.Validate(); err != nil {
		return BulkUpdateResult{}, err
	}

	reader := h.uowFactory.Create()
	b, err := reader.BatchRepository().Get(ctx, cmd.BatchCode())
	if err != nil {
		return BulkUpdateResult{}, err
	}
	if err = b.CheckOwner(cmd.StaffID()); err != nil {
		return BulkUpdateResult{}, err
	}

	members, err := reader.ShippingAttemptRepository().ListByBatch(ctx, b.Code())
	if err != nil {
		return BulkUpdateResult{}, err
	}
	byOrder := make(map[kernel.UUID]*shipment.Attempt, len(members))
	for _, m := range members {
		byOrder[m.OrderID()] = m
	}

	var notifications []ports.Notification
	results := make([]MemberResult, 0, len(cmd.Updates()))
	for _, u := range cmd.Updates() {
		member, ok := byOrder[u.OrderID]
		if !ok {
			results = append(results, MemberResult{
				OrderID: u.OrderID,
				Err:     fmt.Errorf("%w: order %s, batch %s", ErrNotBatchMember, u.OrderID, b.Code()),
			})
			continue
		}

		id := member.ID()
		result := MemberResult{OrderID: u.OrderID, AttemptID: &id, Status: member.Status()}
		updated, n, err := h.updateMember(ctx, b.Code(), id, cmd.StaffID(), u)
		if err != nil {
			result.Err = err
		} else {
			result.Status = updated.Status()
			if n != nil {
				notifications = append(notifications, *n)
			}
		}
		results = append(results, result)
	}

	notifyAll(ctx, h.notifier, notifications)

	refreshed, err := h.refresh(ctx, b.Code())
	if err != nil {
		return BulkUpdateResult{Batch: b, Results: results}, err
	}
	return BulkUpdateResult{Batch: refreshed, Results: results}, nil
}

func (h *BulkUpdateBatchCommandHandler) updateMember(
	ctx context.Context,
	code string,
	attemptID, staffID kernel.UUID,
	u MemberUpdate,
) (*shipment.Attempt, *ports.Notification, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// re-read inside the transaction: the member may have moved since the batch was listed
	attempt, err := uow.ShippingAttemptRepository().Get(ctx, attemptID)
	if err != nil {
		return nil, nil, err
	}
	if attempt.BatchCode() != code {
		return nil, nil, fmt.Errorf("%w: attempt %s", ErrNotBatchMember, attemptID)
	}

	o, err := applyTransition(ctx, uow, attempt, u.Target, staffID, u.Payload, h.clock())
	if err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	if n, ok := attemptNotification(o, attempt); ok {
		return attempt, &n, nil
	}
	return attempt, nil, nil
}

func (h *BulkUpdateBatchCommandHandler) refresh(ctx context.Context, code string) (*batch.Batch, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	b, err := refreshBatch(ctx, uow, code, h.clock())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return b, nil
}
