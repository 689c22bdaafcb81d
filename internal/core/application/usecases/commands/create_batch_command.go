package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateBatchCommandIsNotConstructed = errors.New(
	"CreateBatchCommand must be created via NewCreateBatchCommand constructor",
)

// CreateBatchCommand groups the open attempts of several orders into one run
// for one staff member.
type CreateBatchCommand struct { //nolint:recvcheck //using for validation
	orderIDs []kernel.UUID
	staffID  kernel.UUID
	note     string

	guard guard.ConstructorGuard
}

func NewCreateBatchCommand(orderIDs []kernel.UUID, staffID kernel.UUID, note string) (CreateBatchCommand, error) {
	cmd := CreateBatchCommand{
		note:  strings.TrimSpace(note),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(cmd.setOrderIDs(orderIDs), staffID.Validate()); err != nil {
		return CreateBatchCommand{}, err
	}
	cmd.staffID = staffID

	return cmd, nil
}

func (c CreateBatchCommand) Validate() error {
	return c.guard.Validate(ErrCreateBatchCommandIsNotConstructed)
}

func (c CreateBatchCommand) OrderIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.orderIDs...)
}
func (c CreateBatchCommand) StaffID() kernel.UUID { return c.staffID }
func (c CreateBatchCommand) Note() string         { return c.note }

func (c *CreateBatchCommand) setOrderIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("order ids")
	}
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	c.orderIDs = append([]kernel.UUID(nil), ids...)
	return nil
}
