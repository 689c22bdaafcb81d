package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/pkg/guard"
)

var ErrOpenReturnRequestCommandIsNotConstructed = errors.New(
	"OpenReturnRequestCommand must be created via NewOpenReturnRequestCommand constructor",
)

// OpenReturnRequestCommand is a customer's claim to send a delivered order back.
type OpenReturnRequestCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	reason     returns.Reason
	detail     string
	evidence   []string

	guard guard.ConstructorGuard
}

func NewOpenReturnRequestCommand(
	orderID, customerID kernel.UUID,
	reason returns.Reason,
	detail string,
	evidence []string,
) (OpenReturnRequestCommand, error) {
	if err := errors.Join(orderID.Validate(), customerID.Validate(), reason.Validate()); err != nil {
		return OpenReturnRequestCommand{}, err
	}

	return OpenReturnRequestCommand{
		orderID:    orderID,
		customerID: customerID,
		reason:     reason,
		detail:     strings.TrimSpace(detail),
		evidence:   cleanPayloadPictures(evidence),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c OpenReturnRequestCommand) Validate() error {
	return c.guard.Validate(ErrOpenReturnRequestCommandIsNotConstructed)
}

func (c OpenReturnRequestCommand) OrderID() kernel.UUID    { return c.orderID }
func (c OpenReturnRequestCommand) CustomerID() kernel.UUID { return c.customerID }
func (c OpenReturnRequestCommand) Reason() returns.Reason  { return c.reason }
func (c OpenReturnRequestCommand) Detail() string          { return c.detail }
func (c OpenReturnRequestCommand) Evidence() []string      { return append([]string(nil), c.evidence...) }
