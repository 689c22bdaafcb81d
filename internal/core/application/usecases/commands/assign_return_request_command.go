package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignReturnRequestCommandIsNotConstructed = errors.New(
	"AssignReturnRequestCommand must be created via NewAssignReturnRequestCommand constructor",
)

// AssignReturnRequestCommand hands an approved request to a warehouse staff member.
type AssignReturnRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	staffID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignReturnRequestCommand(requestID, staffID kernel.UUID) (AssignReturnRequestCommand, error) {
	if err := errors.Join(requestID.Validate(), staffID.Validate()); err != nil {
		return AssignReturnRequestCommand{}, err
	}

	return AssignReturnRequestCommand{
		requestID: requestID,
		staffID:   staffID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AssignReturnRequestCommand) Validate() error {
	return c.guard.Validate(ErrAssignReturnRequestCommandIsNotConstructed)
}

func (c AssignReturnRequestCommand) RequestID() kernel.UUID { return c.requestID }
func (c AssignReturnRequestCommand) StaffID() kernel.UUID   { return c.staffID }
