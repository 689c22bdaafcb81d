package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrOpenAttemptCommandIsNotConstructed = errors.New(
	"OpenAttemptCommand must be created via NewOpenAttemptCommand constructor",
)

// OpenAttemptCommand starts a new shipping attempt for an order.
// The declared COD total is taken from the order.
type OpenAttemptCommand struct { //nolint:recvcheck //using for validation
	orderID           kernel.UUID
	estimatedDelivery *time.Time

	guard guard.ConstructorGuard
}

func NewOpenAttemptCommand(orderID kernel.UUID, estimatedDelivery *time.Time) (OpenAttemptCommand, error) {
	if err := orderID.Validate(); err != nil {
		return OpenAttemptCommand{}, err
	}

	return OpenAttemptCommand{
		orderID:           orderID,
		estimatedDelivery: estimatedDelivery,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func (c OpenAttemptCommand) Validate() error {
	return c.guard.Validate(ErrOpenAttemptCommandIsNotConstructed)
}

func (c OpenAttemptCommand) OrderID() kernel.UUID { return c.orderID }

// EstimatedDelivery is optional.
func (c OpenAttemptCommand) EstimatedDelivery() *time.Time { return c.estimatedDelivery }
