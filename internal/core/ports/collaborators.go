package ports

import (
	"context"
	"io"

	"fulfillment/internal/core/domain/model/kernel"
)

// NotificationKind names the event a customer is told about.
type NotificationKind string

const (
	NotifyOutForDelivery NotificationKind = "OUT_FOR_DELIVERY"
	NotifyDelivered      NotificationKind = "DELIVERED"
	NotifyDeliveryFailed NotificationKind = "DELIVERY_FAILED"
	NotifyReturnReviewed NotificationKind = "RETURN_REVIEWED"
	NotifyReturnReceived NotificationKind = "RETURN_RECEIVED"
)

// Notification is a message about one order sent after a transition committed.
type Notification struct {
	Kind    NotificationKind
	OrderID kernel.UUID
	Phone   string
	Params  map[string]string
}

// Notifier delivers notifications fire-and-forget: Notify never blocks on the
// provider and its failures never affect the transition that triggered it.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// PhotoStorage stores proof and evidence photos and returns a stable URI.
type PhotoStorage interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

// StaffDirectory lists the staff members eligible for automatic assignment.
type StaffDirectory interface {
	ActiveStaff(ctx context.Context) ([]kernel.UUID, error)
}
