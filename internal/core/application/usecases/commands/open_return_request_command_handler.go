package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/domain/services"
)

// OpenReturnRequestCommandHandler opens return requests against delivered orders.
// Storage enforces at most one active request per order, so two concurrent
// opens leave one request and one returns.ErrDuplicateRequest.
type OpenReturnRequestCommandHandler struct {
	uowFactory UoWFactory
	policy     services.ReturnPolicy
	clock      Clock
}

func NewOpenReturnRequestCommandHandler(uowFactory UoWFactory) OpenReturnRequestCommandHandler {
	return OpenReturnRequestCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewReturnPolicy(),
		clock:      systemClock,
	}
}

func (h *OpenReturnRequestCommandHandler) Handle(ctx context.Context, cmd OpenReturnRequestCommand) (*returns.Request, error) {
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

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	attempts, err := uow.ShippingAttemptRepository().ListByOrder(ctx, o.ID())
	if err != nil {
		return nil, err
	}
	existing, err := uow.ReturnRequestRepository().ListByOrder(ctx, o.ID())
	if err != nil {
		return nil, err
	}

	delivered, err := h.policy.CheckOpen(o, cmd.CustomerID(), attempts, existing)
	if err != nil {
		return nil, err
	}

	request, err := returns.NewRequest(
		kernel.NewUUID(), o.ID(), delivered.ID(), cmd.CustomerID(),
		cmd.Reason(), cmd.Detail(), cmd.Evidence(), h.clock(),
	)
	if err != nil {
		return nil, err
	}
	if err = uow.ReturnRequestRepository().Add(ctx, request); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return request, nil
}
