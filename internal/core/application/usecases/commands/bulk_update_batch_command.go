package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrBulkUpdateBatchCommandIsNotConstructed = errors.New(
	"BulkUpdateBatchCommand must be created via NewBulkUpdateBatchCommand constructor",
)

// MemberUpdate is the requested transition for the batch member of one order.
type MemberUpdate struct {
	OrderID kernel.UUID
	Target  shipment.Status
	Payload shipment.Payload
}

// BulkUpdateBatchCommand applies per-order transitions to a batch. Each
// member succeeds or fails on its own.
type BulkUpdateBatchCommand struct { //nolint:recvcheck //using for validation
	batchCode string
	staffID   kernel.UUID
	updates   []MemberUpdate

	guard guard.ConstructorGuard
}

func NewBulkUpdateBatchCommand(batchCode string, staffID kernel.UUID, updates []MemberUpdate) (BulkUpdateBatchCommand, error) {
	code, err := batchCodeParam(batchCode)
	if err = errors.Join(err, staffID.Validate(), validateMemberUpdates(updates)); err != nil {
		return BulkUpdateBatchCommand{}, err
	}

	cleaned := make([]MemberUpdate, 0, len(updates))
	for _, u := range updates {
		u.Payload = cleanPayload(u.Payload)
		cleaned = append(cleaned, u)
	}

	return BulkUpdateBatchCommand{
		batchCode: code,
		staffID:   staffID,
		updates:   cleaned,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c BulkUpdateBatchCommand) Validate() error {
	return c.guard.Validate(ErrBulkUpdateBatchCommandIsNotConstructed)
}

func (c BulkUpdateBatchCommand) BatchCode() string    { return c.batchCode }
func (c BulkUpdateBatchCommand) StaffID() kernel.UUID { return c.staffID }
func (c BulkUpdateBatchCommand) Updates() []MemberUpdate {
	return append([]MemberUpdate(nil), c.updates...)
}

func validateMemberUpdates(updates []MemberUpdate) error {
	if len(updates) == 0 {
		return errs.NewValueIsRequiredError("updates")
	}

	seen := make(map[kernel.UUID]struct{}, len(updates))
	for _, u := range updates {
		if err := errors.Join(u.OrderID.Validate(), u.Target.Validate()); err != nil {
			return err
		}
		if _, dup := seen[u.OrderID]; dup {
			return errs.NewValueIsInvalidErrorWithCause("updates", fmt.Errorf("order %s listed twice", u.OrderID))
		}
		seen[u.OrderID] = struct{}{}
	}
	return nil
}
