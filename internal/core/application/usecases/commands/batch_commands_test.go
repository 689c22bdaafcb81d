package commands_test

import (
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/core/domain/model/cod"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// batchOf opens one attempt per order of customer and batches them for staff.
func batchOf(t *testing.T, f *fixture, staff, customer kernel.UUID, size int) (*batch.Batch, []*order.Order) {
	t.Helper()
	orders := make([]*order.Order, 0, size)
	for range size {
		o := f.order(customer)
		f.open(o)
		orders = append(orders, o)
	}
	b, err := f.createBatch(staff, orders...)
	require.NoError(t, err)
	return b, orders
}

func memberOf(t *testing.T, f *fixture, o *order.Order) *shipment.Attempt {
	t.Helper()
	history, err := f.store.Create().ShippingAttemptRepository().ListByOrder(f.ctx, o.ID())
	require.NoError(t, err)
	require.NotEmpty(t, history)
	return history[len(history)-1]
}

func TestCreateBatch(t *testing.T) {
	alice, bob := kernel.NewUUID(), kernel.NewUUID()

	t.Run("claims every member", func(t *testing.T) {
		f := newFixture(t)
		b, orders := batchOf(t, f, alice, kernel.NewUUID(), 3)

		assert.Regexp(t, `^BATCH-\d{8}-[0-9A-F]{6}$`, b.Code())
		assert.Equal(t, batch.Assigned, b.Status())
		assert.Len(t, b.Members(), 3)
		for _, o := range orders {
			m := memberOf(t, f, o)
			assert.Equal(t, shipment.Assigned, m.Status())
			assert.True(t, m.IsAssignedTo(alice))
			assert.Equal(t, b.Code(), m.BatchCode())
		}
		holdings := f.store.snapshot().holdings
		assert.Equal(t, alice, holdings[assignment.BatchSubject(b.Code())].StaffID)
	})

	t.Run("one ineligible order rejects the whole batch", func(t *testing.T) {
		f := newFixture(t)
		customer := kernel.NewUUID()
		free, taken := f.order(customer), f.order(customer)
		freeAttempt := f.open(free)
		takenAttempt := f.open(taken)
		_, err := f.claim(takenAttempt.ID(), bob)
		require.NoError(t, err)

		_, err = f.createBatch(alice, free, taken)

		require.ErrorIs(t, err, batch.ErrIneligibleMember)
		assert.Contains(t, err.Error(), taken.ID().String())
		stored := f.store.attempt(freeAttempt.ID())
		assert.Equal(t, shipment.Pending, stored.Status())
		assert.Nil(t, stored.Assignee())
		assert.Empty(t, stored.BatchCode())
		assert.Empty(t, f.store.snapshot().batches)
	})

	t.Run("a failed member write rolls back the others", func(t *testing.T) {
		f := newFixture(t)
		customer := kernel.NewUUID()
		first, second := f.order(customer), f.order(customer)
		firstAttempt, secondAttempt := f.open(first), f.open(second)
		f.store.beforeUpdateAttempt[secondAttempt.ID()] = func() error { return errors.New("connection reset") }

		_, err := f.createBatch(alice, first, second)

		require.Error(t, err)
		assert.Equal(t, shipment.Pending, f.store.attempt(firstAttempt.ID()).Status())
		assert.Empty(t, f.store.snapshot().holdings)
		assert.Empty(t, f.store.snapshot().batches)
	})

	t.Run("orders of different customers", func(t *testing.T) {
		f := newFixture(t)
		mine, theirs := f.order(kernel.NewUUID()), f.order(kernel.NewUUID())
		f.open(mine)
		f.open(theirs)

		_, err := f.createBatch(alice, mine, theirs)

		require.ErrorIs(t, err, batch.ErrIneligibleMember)
	})

	t.Run("order without open attempt", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.createBatch(alice, f.order(kernel.NewUUID()))
		require.ErrorIs(t, err, batch.ErrIneligibleMember)
	})
}

func TestPickupBatch(t *testing.T) {
	alice, bob := kernel.NewUUID(), kernel.NewUUID()

	t.Run("every member leaves together", func(t *testing.T) {
		f := newFixture(t)
		b, orders := batchOf(t, f, alice, kernel.NewUUID(), 2)

		res, err := f.pickup(b.Code(), alice)

		require.NoError(t, err)
		assert.Equal(t, batch.OutForDelivery, res.Batch.Status())
		assert.NotNil(t, res.Batch.PickedUpAt())
		for _, o := range orders {
			assert.Equal(t, shipment.OutForDelivery, memberOf(t, f, o).Status())
		}
		assert.Equal(t, []ports.NotificationKind{ports.NotifyOutForDelivery, ports.NotifyOutForDelivery}, f.notifier.kinds())
	})

	t.Run("one member not assigned rejects the pickup", func(t *testing.T) {
		f := newFixture(t)
		b, orders := batchOf(t, f, alice, kernel.NewUUID(), 2)
		cancelled := memberOf(t, f, orders[0])
		cmd, err := commands.NewCancelAttemptCommand(cancelled.ID(), "customer called to cancel")
		require.NoError(t, err)
		h := commands.NewCancelAttemptCommandHandler(f.store)
		_, err = h.Handle(f.ctx, cmd)
		require.NoError(t, err)

		_, err = f.pickup(b.Code(), alice)

		require.ErrorIs(t, err, batch.ErrPartialPickupRejected)
		assert.Equal(t, shipment.Assigned, memberOf(t, f, orders[1]).Status())
		assert.Empty(t, f.notifier.kinds())
	})

	t.Run("someone else's batch", func(t *testing.T) {
		f := newFixture(t)
		b, _ := batchOf(t, f, alice, kernel.NewUUID(), 1)

		_, err := f.pickup(b.Code(), bob)

		require.ErrorIs(t, err, assignment.ErrNotAssignee)
	})
}

func TestBulkUpdateBatch(t *testing.T) {
	alice := kernel.NewUUID()

	t.Run("members succeed or fail independently", func(t *testing.T) {
		f := newFixture(t)
		b, orders := batchOf(t, f, alice, kernel.NewUUID(), 3)
		_, err := f.pickup(b.Code(), alice)
		require.NoError(t, err)

		res, err := f.bulkUpdate(b.Code(), alice,
			commands.MemberUpdate{OrderID: orders[0].ID(), Target: shipment.Delivered, Payload: codPayload(orders[0].Total())},
			commands.MemberUpdate{OrderID: orders[1].ID(), Target: shipment.Delivered, Payload: codPayload(kernel.MustMoney(5))},
			commands.MemberUpdate{OrderID: orders[2].ID(), Target: shipment.Failed, Payload: failedPayload()},
		)

		require.NoError(t, err)
		require.Len(t, res.Results, 3)
		assert.NoError(t, res.Results[0].Err)
		assert.Equal(t, shipment.Delivered, res.Results[0].Status)
		assert.ErrorIs(t, res.Results[1].Err, cod.ErrCODMismatch)
		assert.Equal(t, shipment.OutForDelivery, res.Results[1].Status)
		assert.NoError(t, res.Results[2].Err)
		assert.Equal(t, shipment.Failed, res.Results[2].Status)
		assert.Equal(t, 1, res.Failed())

		assert.Equal(t, shipment.Delivered, memberOf(t, f, orders[0]).Status())
		assert.Equal(t, shipment.OutForDelivery, memberOf(t, f, orders[1]).Status())
		assert.Equal(t, order.Delivered, f.store.order(orders[0].ID()).Status())
		assert.Equal(t, order.Processing, f.store.order(orders[2].ID()).Status())
		assert.Equal(t, batch.OutForDelivery, res.Batch.Status())

		// batch members are reconciled at batch level only
		assert.Nil(t, f.store.record(cod.AttemptRef(memberOf(t, f, orders[0]).ID())))
	})

	t.Run("order outside the batch", func(t *testing.T) {
		f := newFixture(t)
		b, _ := batchOf(t, f, alice, kernel.NewUUID(), 1)

		res, err := f.bulkUpdate(b.Code(), alice,
			commands.MemberUpdate{OrderID: kernel.NewUUID(), Target: shipment.PickedUp})

		require.NoError(t, err)
		require.Len(t, res.Results, 1)
		assert.ErrorIs(t, res.Results[0].Err, commands.ErrNotBatchMember)
		assert.Nil(t, res.Results[0].AttemptID)
	})

	t.Run("all members resolved", func(t *testing.T) {
		f := newFixture(t)
		b, orders := batchOf(t, f, alice, kernel.NewUUID(), 2)
		_, err := f.pickup(b.Code(), alice)
		require.NoError(t, err)

		res, err := f.bulkUpdate(b.Code(), alice,
			commands.MemberUpdate{OrderID: orders[0].ID(), Target: shipment.Delivered, Payload: codPayload(orders[0].Total())},
			commands.MemberUpdate{OrderID: orders[1].ID(), Target: shipment.Returned, Payload: failedPayload()},
		)

		require.NoError(t, err)
		assert.Zero(t, res.Failed())
		assert.Equal(t, batch.Resolved, res.Batch.Status())
	})
}

func TestCompleteBatch(t *testing.T) {
	alice, bob := kernel.NewUUID(), kernel.NewUUID()
	photos := []string{"https://photos.example.com/batch/handover.jpg"}

	resolved := func(t *testing.T, f *fixture) (*batch.Batch, []*order.Order) {
		t.Helper()
		b, orders := batchOf(t, f, alice, kernel.NewUUID(), 2)
		_, err := f.pickup(b.Code(), alice)
		require.NoError(t, err)
		_, err = f.bulkUpdate(b.Code(), alice,
			commands.MemberUpdate{OrderID: orders[0].ID(), Target: shipment.Delivered, Payload: codPayload(orders[0].Total())},
			commands.MemberUpdate{OrderID: orders[1].ID(), Target: shipment.Delivered, Payload: codPayload(orders[1].Total())},
		)
		require.NoError(t, err)
		return b, orders
	}

	t.Run("records one batch-level collection", func(t *testing.T) {
		f := newFixture(t)
		b, _ := resolved(t, f)
		total := kernel.MustMoney(480000)

		completed, err := f.completeBatch(b.Code(), alice, batch.Completion{Photos: photos, CODCollected: true, TotalCODAmount: total})

		require.NoError(t, err)
		assert.Equal(t, batch.Completed, completed.Status())
		record := f.store.record(cod.BatchRef(b.Code()))
		require.NotNil(t, record)
		assert.True(t, record.Collected().IsEqual(total))
		_, held := f.store.snapshot().holdings[assignment.BatchSubject(b.Code())]
		assert.False(t, held)
	})

	t.Run("COD total must match delivered members", func(t *testing.T) {
		f := newFixture(t)
		b, _ := resolved(t, f)

		_, err := f.completeBatch(b.Code(), alice, batch.Completion{Photos: photos, CODCollected: true, TotalCODAmount: kernel.MustMoney(1)})

		require.ErrorIs(t, err, cod.ErrCODMismatch)
		assert.Nil(t, f.store.record(cod.BatchRef(b.Code())))
	})

	t.Run("cannot close without COD when members collected", func(t *testing.T) {
		f := newFixture(t)
		b, _ := resolved(t, f)

		_, err := f.completeBatch(b.Code(), alice, batch.Completion{Photos: photos, CODCollected: false})

		require.ErrorIs(t, err, cod.ErrCODMismatch)
		assert.Nil(t, f.store.record(cod.BatchRef(b.Code())))
		stored, err := f.store.Create().BatchRepository().Get(f.ctx, b.Code())
		require.NoError(t, err)
		assert.NotEqual(t, batch.Completed, stored.Status())
	})

	t.Run("later batch collection must equal the members' sum", func(t *testing.T) {
		f := newFixture(t)
		b, orders := batchOf(t, f, alice, kernel.NewUUID(), 2)
		_, err := f.pickup(b.Code(), alice)
		require.NoError(t, err)
		_, err = f.bulkUpdate(b.Code(), alice,
			commands.MemberUpdate{OrderID: orders[0].ID(), Target: shipment.Delivered, Payload: shipment.Payload{Note: "prepaid"}},
			commands.MemberUpdate{OrderID: orders[1].ID(), Target: shipment.Failed, Payload: failedPayload()},
		)
		require.NoError(t, err)
		_, err = f.completeBatch(b.Code(), alice, batch.Completion{Photos: photos})
		require.NoError(t, err)

		_, err = f.collect(cod.BatchRef(b.Code()), kernel.MustMoney(1))

		require.ErrorIs(t, err, cod.ErrCODMismatch)
		assert.Nil(t, f.store.record(cod.BatchRef(b.Code())))
	})

	t.Run("batch collected at completion is not recorded again", func(t *testing.T) {
		f := newFixture(t)
		b, _ := resolved(t, f)
		total := kernel.MustMoney(480000)
		_, err := f.completeBatch(b.Code(), alice, batch.Completion{Photos: photos, CODCollected: true, TotalCODAmount: total})
		require.NoError(t, err)

		_, err = f.collect(cod.BatchRef(b.Code()), kernel.MustMoney(1))
		require.ErrorIs(t, err, cod.ErrCODMismatch)

		_, err = f.collect(cod.BatchRef(b.Code()), total)
		require.ErrorIs(t, err, cod.ErrCollectionAlreadyRecorded)
	})

	t.Run("members still in flight", func(t *testing.T) {
		f := newFixture(t)
		b, _ := batchOf(t, f, alice, kernel.NewUUID(), 2)

		_, err := f.completeBatch(b.Code(), alice, batch.Completion{Photos: photos})

		require.ErrorIs(t, err, batch.ErrBatchNotReady)
	})

	t.Run("photo required", func(t *testing.T) {
		f := newFixture(t)
		b, _ := resolved(t, f)

		_, err := f.completeBatch(b.Code(), alice, batch.Completion{Photos: []string{" "}, CODCollected: true, TotalCODAmount: kernel.MustMoney(480000)})

		require.ErrorIs(t, err, batch.ErrCompletionPhotoRequired)
	})

	t.Run("only the owner completes", func(t *testing.T) {
		f := newFixture(t)
		b, _ := resolved(t, f)

		_, err := f.completeBatch(b.Code(), bob, batch.Completion{Photos: photos})

		require.ErrorIs(t, err, assignment.ErrNotAssignee)
	})
}
