package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// RegisterOrderCommandHandler stores orders handed over by checkout.
type RegisterOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
}

func NewRegisterOrderCommandHandler(uowFactory OrderUoWFactory) RegisterOrderCommandHandler {
	return RegisterOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      systemClock,
	}
}

// Handle registers the order. A repeated order id fails in storage.
func (h *RegisterOrderCommandHandler) Handle(ctx context.Context, cmd RegisterOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := order.NewOrder(
		cmd.OrderID(), cmd.CustomerID(), cmd.ContactPhone(), cmd.Items(),
		cmd.Status(), cmd.Reason(), cmd.ProcessedBy(), h.clock(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
