package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrPickupBatchCommandIsNotConstructed = errors.New(
	"PickupBatchCommand must be created via NewPickupBatchCommand constructor",
)

// PickupBatchCommand sends every member of a batch out for delivery at once.
type PickupBatchCommand struct { //nolint:recvcheck //using for validation
	batchCode string
	staffID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewPickupBatchCommand(batchCode string, staffID kernel.UUID) (PickupBatchCommand, error) {
	code, err := batchCodeParam(batchCode)
	if err = errors.Join(err, staffID.Validate()); err != nil {
		return PickupBatchCommand{}, err
	}

	return PickupBatchCommand{
		batchCode: code,
		staffID:   staffID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c PickupBatchCommand) Validate() error {
	return c.guard.Validate(ErrPickupBatchCommandIsNotConstructed)
}

func (c PickupBatchCommand) BatchCode() string    { return c.batchCode }
func (c PickupBatchCommand) StaffID() kernel.UUID { return c.staffID }

func batchCodeParam(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", errs.NewValueIsRequiredError("batch code")
	}
	return code, nil
}
