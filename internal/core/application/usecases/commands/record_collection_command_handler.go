package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/core/domain/model/cod"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// ErrNotCollectable is returned for references that cannot have collected cash
// yet: attempts that are not DELIVERED, batch members, and open batches.
var ErrNotCollectable = errs.NewStateConflictError("NotCollectable", "reference cannot have a COD collection")

// RecordCollectionCommandHandler stores the collection of a reference. Each
// reference has at most one collection and it never changes afterwards.
type RecordCollectionCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewRecordCollectionCommandHandler(uowFactory UoWFactory) RecordCollectionCommandHandler {
	return RecordCollectionCommandHandler{
		uowFactory: uowFactory,
		clock:      systemClock,
	}
}

func (h *RecordCollectionCommandHandler) Handle(ctx context.Context, cmd RecordCollectionCommand) (*cod.Record, error) {
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

	attempt, err := h.checkCollectable(ctx, uow, cmd)
	if err != nil {
		return nil, err
	}

	_, err = uow.CODRecordRepository().Find(ctx, cmd.Ref())
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: %s", cod.ErrCollectionAlreadyRecorded, cmd.Ref())
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	at := cmd.CollectedAt()
	if at.IsZero() {
		at = h.clock()
	}

	record, err := cod.NewRecord(kernel.NewUUID(), cmd.Ref())
	if err != nil {
		return nil, err
	}
	if err = record.RecordCollection(cmd.Amount(), at); err != nil {
		return nil, err
	}
	if err = uow.CODRecordRepository().Add(ctx, record); err != nil {
		return nil, err
	}

	if attempt != nil {
		attempt.MarkCODCollected(cmd.Amount(), at)
		if err = uow.ShippingAttemptRepository().Update(ctx, attempt); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return record, nil
}

// checkCollectable returns the stand-alone attempt behind an attempt reference
// so the caller can stamp it. A batch reference yields nil.
func (h *RecordCollectionCommandHandler) checkCollectable(ctx context.Context, uow UoW, cmd RecordCollectionCommand) (*shipment.Attempt, error) {
	ref := cmd.Ref()
	switch ref.Kind {
	case cod.RefAttempt:
		id, err := kernel.UUIDFromString(ref.ID)
		if err != nil {
			return nil, err
		}
		attempt, err := uow.ShippingAttemptRepository().Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if attempt.Status() != shipment.Delivered || attempt.InBatch() {
			return nil, fmt.Errorf("%w: attempt %s is %s", ErrNotCollectable, attempt.ID(), attempt.Status())
		}
		if !cmd.Amount().IsEqual(attempt.DeclaredTotal()) {
			return nil, fmt.Errorf("%w: declared %s, collected %s", cod.ErrCODMismatch, attempt.DeclaredTotal(), cmd.Amount())
		}
		return attempt, nil
	case cod.RefBatch:
		b, err := uow.BatchRepository().Get(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		if b.Status() != batch.Completed {
			return nil, fmt.Errorf("%w: batch %s is %s", ErrNotCollectable, b.Code(), b.Status())
		}
		members, err := uow.ShippingAttemptRepository().ListByBatch(ctx, b.Code())
		if err != nil {
			return nil, err
		}
		collected, err := services.NewBatchPlanner().DeliveredCOD(members)
		if err != nil {
			return nil, err
		}
		if !cmd.Amount().IsEqual(collected) {
			return nil, fmt.Errorf("%w: batch members collected %s, recorded %s", cod.ErrCODMismatch, collected, cmd.Amount())
		}
	}
	return nil, nil
}
