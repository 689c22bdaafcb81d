package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCancelReturnRequestCommandIsNotConstructed = errors.New(
	"CancelReturnRequestCommand must be created via NewCancelReturnRequestCommand constructor",
)

// CancelReturnRequestCommand is the customer withdrawing a request.
type CancelReturnRequestCommand struct { //nolint:recvcheck //using for validation
	requestID  kernel.UUID
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelReturnRequestCommand(requestID, customerID kernel.UUID) (CancelReturnRequestCommand, error) {
	if err := errors.Join(requestID.Validate(), customerID.Validate()); err != nil {
		return CancelReturnRequestCommand{}, err
	}

	return CancelReturnRequestCommand{
		requestID:  requestID,
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CancelReturnRequestCommand) Validate() error {
	return c.guard.Validate(ErrCancelReturnRequestCommandIsNotConstructed)
}

func (c CancelReturnRequestCommand) RequestID() kernel.UUID  { return c.requestID }
func (c CancelReturnRequestCommand) CustomerID() kernel.UUID { return c.customerID }
