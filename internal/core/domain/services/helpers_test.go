package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newOrder(t *testing.T, status order.Status, reason string) *order.Order {
	t.Helper()
	items := []order.LineItem{{ProductID: "sunscreen-50ml", Quantity: 1, UnitPrice: kernel.MustMoney(180000)}}
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "", items, status, reason, nil, now)
	require.NoError(t, err)
	return o
}

type attemptOpt func(*shipment.State)

func withCustomer(id kernel.UUID) attemptOpt {
	return func(s *shipment.State) { s.CustomerID = id }
}

func withOrder(id kernel.UUID) attemptOpt {
	return func(s *shipment.State) { s.OrderID = id }
}

func withAssignee(id kernel.UUID) attemptOpt {
	return func(s *shipment.State) { s.Assignee = &id }
}

func withBatch(code string) attemptOpt {
	return func(s *shipment.State) { s.BatchCode = code }
}

func withCOD(amount int64) attemptOpt {
	return func(s *shipment.State) {
		s.CODCollected = true
		s.CollectedAmount = kernel.MustMoney(amount)
	}
}

// attemptAt restores an attempt in status created offset after now.
func attemptAt(t *testing.T, status shipment.Status, offset time.Duration, opts ...attemptOpt) *shipment.Attempt {
	t.Helper()
	state := shipment.State{
		ID:         kernel.NewUUID(),
		OrderID:    kernel.NewUUID(),
		CustomerID: kernel.NewUUID(),
		Status:     status,
		CreatedAt:  now.Add(offset),
		UpdatedAt:  now.Add(offset),
	}
	if status != shipment.Pending && status != shipment.Cancelled {
		staff := kernel.NewUUID()
		state.Assignee = &staff
	}
	for _, opt := range opts {
		opt(&state)
	}
	a, err := shipment.RestoreAttempt(state)
	require.NoError(t, err)
	return a
}
