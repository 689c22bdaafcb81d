package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/core/domain/model/cod"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
)

// CompleteBatchCommandHandler closes a batch and records its cash as one
// batch-level COD collection.
type CompleteBatchCommandHandler struct {
	uowFactory UoWFactory
	planner    services.BatchPlanner
	clock      Clock
}

func NewCompleteBatchCommandHandler(uowFactory UoWFactory) CompleteBatchCommandHandler {
	return CompleteBatchCommandHandler{
		uowFactory: uowFactory,
		planner:    services.NewBatchPlanner(),
		clock:      systemClock,
	}
}

func (h *CompleteBatchCommandHandler) Handle(ctx context.Context, cmd CompleteBatchCommand) (*batch.Batch, error) {
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

	b, err := uow.BatchRepository().Get(ctx, cmd.BatchCode())
	if err != nil {
		return nil, err
	}
	members, err := uow.ShippingAttemptRepository().ListByBatch(ctx, b.Code())
	if err != nil {
		return nil, err
	}
	deliveredCOD, err := h.planner.DeliveredCOD(members)
	if err != nil {
		return nil, err
	}

	now := h.clock()
	completion := cmd.Completion()
	if err = b.Complete(cmd.StaffID(), h.planner.Statuses(members), completion, deliveredCOD, now); err != nil {
		return nil, err
	}
	if err = uow.BatchRepository().Update(ctx, b); err != nil {
		return nil, err
	}

	if completion.CODCollected && !completion.TotalCODAmount.IsZero() {
		record, err := cod.NewRecord(kernel.NewUUID(), cod.BatchRef(b.Code()))
		if err != nil {
			return nil, err
		}
		if err = record.RecordCollection(completion.TotalCODAmount, now); err != nil {
			return nil, err
		}
		if err = uow.CODRecordRepository().Add(ctx, record); err != nil {
			return nil, err
		}
	}

	registry := services.NewStaffAssignmentRegistry(uow.AssignmentRepository())
	if err = registry.Release(ctx, assignment.BatchSubject(b.Code())); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return b, nil
}
