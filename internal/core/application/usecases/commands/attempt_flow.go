package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/cod"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderClosed is returned when opening an attempt for an order the
	// upstream system rejected or cancelled.
	ErrOrderClosed = errs.NewStateConflictError("OrderClosed", "order was rejected or cancelled upstream")

	// ErrNotBatchMember is returned by bulk updates naming an order outside the batch.
	ErrNotBatchMember = errs.NewStateConflictError("NotBatchMember", "order is not a member of the batch")
)

// syncOrder recomputes the order status from its attempt history and stores
// it when it changed. Must run after the attempts were written in the same
// unit of work.
func syncOrder(ctx context.Context, uow UoW, orderID kernel.UUID, now time.Time) (*order.Order, error) {
	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	attempts, err := uow.ShippingAttemptRepository().ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	changed, err := services.NewOrderLedger().Sync(o, attempts, now)
	if err != nil {
		return nil, err
	}
	if changed {
		if err = uow.OrderRepository().Update(ctx, o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// applyTransition moves one attempt and everything that follows from it:
// the COD collection of a stand-alone delivery, the release of the holding
// on terminal states and the order status.
func applyTransition(
	ctx context.Context,
	uow UoW,
	attempt *shipment.Attempt,
	target shipment.Status,
	staffID kernel.UUID,
	payload shipment.Payload,
	now time.Time,
) (*order.Order, error) {
	if err := attempt.Transition(target, staffID, payload, now); err != nil {
		return nil, err
	}
	if err := uow.ShippingAttemptRepository().Update(ctx, attempt); err != nil {
		return nil, err
	}

	// batch members are reconciled once, at batch completion
	if target == shipment.Delivered && attempt.CODCollected() && !attempt.InBatch() {
		record, err := cod.NewRecord(kernel.NewUUID(), cod.AttemptRef(attempt.ID()))
		if err != nil {
			return nil, err
		}
		if err = record.RecordCollection(attempt.CollectedAmount(), now); err != nil {
			return nil, err
		}
		if err = uow.CODRecordRepository().Add(ctx, record); err != nil {
			return nil, err
		}
	}

	if target.IsTerminal() {
		registry := services.NewStaffAssignmentRegistry(uow.AssignmentRepository())
		if err := registry.Release(ctx, assignment.AttemptSubject(attempt.ID())); err != nil {
			return nil, err
		}
	}

	return syncOrder(ctx, uow, attempt.OrderID(), now)
}

// attemptNotification describes what the customer hears about the attempt's
// current status. ok is false when there is nothing to say or nobody to tell.
func attemptNotification(o *order.Order, a *shipment.Attempt) (n ports.Notification, ok bool) {
	var kind ports.NotificationKind
	switch a.Status() {
	case shipment.OutForDelivery:
		kind = ports.NotifyOutForDelivery
	case shipment.Delivered:
		kind = ports.NotifyDelivered
	case shipment.Failed, shipment.Returned:
		kind = ports.NotifyDeliveryFailed
	default:
		return ports.Notification{}, false
	}
	if o == nil || o.ContactPhone() == "" {
		return ports.Notification{}, false
	}

	return ports.Notification{
		Kind:    kind,
		OrderID: o.ID(),
		Phone:   o.ContactPhone(),
		Params: map[string]string{
			"order":  o.ID().String(),
			"status": a.Status().String(),
		},
	}, true
}

func notifyAll(ctx context.Context, notifier ports.Notifier, notifications []ports.Notification) {
	if notifier == nil {
		return
	}
	for _, n := range notifications {
		notifier.Notify(ctx, n)
	}
}
