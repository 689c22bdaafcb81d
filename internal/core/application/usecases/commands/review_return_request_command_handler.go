package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/ports"
)

type ReviewReturnRequestCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	clock      Clock
}

func NewReviewReturnRequestCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) ReviewReturnRequestCommandHandler {
	return ReviewReturnRequestCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      systemClock,
	}
}

// Handle records the decision and tells the customer about it after commit.
func (h *ReviewReturnRequestCommandHandler) Handle(ctx context.Context, cmd ReviewReturnRequestCommand) (*returns.Request, error) {
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

	request, err := uow.ReturnRequestRepository().Get(ctx, cmd.RequestID())
	if err != nil {
		return nil, err
	}
	if err = request.Review(cmd.Decision(), cmd.ReviewerID(), cmd.Note(), h.clock()); err != nil {
		return nil, err
	}
	if err = uow.ReturnRequestRepository().Update(ctx, request); err != nil {
		return nil, err
	}

	o, err := uow.OrderRepository().Get(ctx, request.OrderID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if n, ok := returnNotification(ports.NotifyReturnReviewed, o, request); ok {
		notifyAll(ctx, h.notifier, []ports.Notification{n})
	}

	return request, nil
}

func returnNotification(kind ports.NotificationKind, o *order.Order, r *returns.Request) (ports.Notification, bool) {
	if o == nil || o.ContactPhone() == "" {
		return ports.Notification{}, false
	}
	return ports.Notification{
		Kind:    kind,
		OrderID: o.ID(),
		Phone:   o.ContactPhone(),
		Params: map[string]string{
			"order":  o.ID().String(),
			"status": r.Status().String(),
		},
	}, true
}
