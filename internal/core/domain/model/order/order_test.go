package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func items() []order.LineItem {
	return []order.LineItem{
		{ProductID: "cleanser-150ml", Quantity: 2, UnitPrice: kernel.MustMoney(90000)},
		{ProductID: "serum-30ml", Quantity: 1, UnitPrice: kernel.MustMoney(320000)},
	}
}

func TestNewOrder(t *testing.T) {
	id := kernel.NewUUID()
	customer := kernel.NewUUID()

	t.Run("should register confirmed order and compute total", func(t *testing.T) {
		o, err := order.NewOrder(id, customer, " +84901234567 ", items(), order.Confirmed, "", nil, now)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.IsOwnedBy(customer))
		assert.Equal(t, "+84901234567", o.ContactPhone())
		assert.Equal(t, int64(500000), o.Total().Amount())
		assert.Equal(t, order.Confirmed, o.Status())
		assert.Len(t, o.Items(), 2)
	})

	t.Run("should register rejected order with reason", func(t *testing.T) {
		o, err := order.NewOrder(id, customer, "", items(), order.Rejected, "payment declined", nil, now)

		require.NoError(t, err)
		assert.True(t, o.HasUpstreamDecision())
		assert.Equal(t, "payment declined", o.UpstreamReason())
	})

	t.Run("should require a reason for rejection", func(t *testing.T) {
		_, err := order.NewOrder(id, customer, "", items(), order.Cancelled, " ", nil, now)

		require.ErrorIs(t, err, order.ErrReasonIsRequired)
	})

	t.Run("should refuse shipping statuses at registration", func(t *testing.T) {
		_, err := order.NewOrder(id, customer, "", items(), order.Delivered, "", nil, now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "DELIVERED is not a valid status to register an order")
	})

	t.Run("should require line items", func(t *testing.T) {
		_, err := order.NewOrder(id, customer, "", nil, order.Pending, "", nil, now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject bad quantity", func(t *testing.T) {
		bad := []order.LineItem{{ProductID: "toner", Quantity: 0, UnitPrice: kernel.MustMoney(1)}}

		_, err := order.NewOrder(id, customer, "", bad, order.Pending, "", nil, now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "item 0")
	})

	t.Run("should join every validation error", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, kernel.UUID{}, "", nil, order.Unknown, "", nil, now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "customer")
		assert.Contains(t, err.Error(), "line items")
		assert.Contains(t, err.Error(), "status is invalid")
	})
}

func TestOrder_SyncStatus(t *testing.T) {
	o, _ := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "", items(), order.Processing, "", nil, now)

	changed, err := o.SyncStatus(order.Shipping, now.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, order.Shipping, o.Status())

	changed, err = o.SyncStatus(order.Shipping, now.Add(2*time.Minute))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, now.Add(time.Minute), o.UpdatedAt())

	_, err = o.SyncStatus(order.Unknown, now)
	require.Error(t, err)
}

func TestOrder_MarkReturned(t *testing.T) {
	o, _ := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "", items(), order.Processing, "", nil, now)
	first := now.Add(time.Hour)

	o.MarkReturned(first)
	o.MarkReturned(first.Add(time.Hour))

	assert.True(t, o.IsReturned())
	assert.Equal(t, first, *o.ReturnedAt())
}

func TestRestoreOrder(t *testing.T) {
	staff := kernel.NewUUID()

	o, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), "", items(), order.Shipping, "", &staff, nil, now, now, 3)

	require.NoError(t, err)
	assert.Equal(t, order.Shipping, o.Status())
	assert.Equal(t, int64(3), o.Version())
	assert.True(t, o.ProcessedBy().IsEqual(staff))
}

func TestOrder_IsEqual(t *testing.T) {
	id := kernel.NewUUID()
	a, _ := order.NewOrder(id, kernel.NewUUID(), "", items(), order.Pending, "", nil, now)
	b, _ := order.NewOrder(id, kernel.NewUUID(), "", items(), order.Pending, "", nil, now)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(nil))
}
