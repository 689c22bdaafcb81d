package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/cod"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// RecordTransferCommandHandler appends transfers to COD records.
//
// The record is re-read under a row lock inside the transaction, so two
// concurrent transfers are checked one after the other and their sum never
// exceeds the collected amount. When the attempt's cash is fully handed over
// the attempt is stamped as transferred.
type RecordTransferCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewRecordTransferCommandHandler(uowFactory UoWFactory) RecordTransferCommandHandler {
	return RecordTransferCommandHandler{
		uowFactory: uowFactory,
		clock:      systemClock,
	}
}

func (h *RecordTransferCommandHandler) Handle(ctx context.Context, cmd RecordTransferCommand) (*cod.Record, error) {
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

	record, err := uow.CODRecordRepository().FindForUpdate(ctx, cmd.Ref())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: nothing collected for %s", cod.ErrOverTransfer, cmd.Ref())
	}
	if err != nil {
		return nil, err
	}

	at := cmd.TransferredAt()
	if at.IsZero() {
		at = h.clock()
	}
	if _, err = record.RecordTransfer(kernel.NewUUID(), cmd.Amount(), at); err != nil {
		return nil, err
	}
	if err = uow.CODRecordRepository().Update(ctx, record); err != nil {
		return nil, err
	}

	if record.IsSettled() && record.Ref().Kind == cod.RefAttempt {
		if err = h.markAttemptTransferred(ctx, uow, record, at); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return record, nil
}

func (h *RecordTransferCommandHandler) markAttemptTransferred(ctx context.Context, uow UoW, record *cod.Record, at time.Time) error {
	id, err := kernel.UUIDFromString(record.Ref().ID)
	if err != nil {
		return err
	}
	attempt, err := uow.ShippingAttemptRepository().Get(ctx, id)
	if err != nil {
		return err
	}
	attempt.MarkCODTransferred(at)
	return uow.ShippingAttemptRepository().Update(ctx, attempt)
}
