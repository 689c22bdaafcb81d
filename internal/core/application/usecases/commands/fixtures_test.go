package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/core/domain/model/cod"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/require"
)

const customerPhone = "+84901234567"

var now = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

// fixture drives the real handlers against an in-memory store.
type fixture struct {
	t        *testing.T
	ctx      context.Context
	store    *memStore
	notifier *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{t: t, ctx: t.Context(), store: newMemStore(), notifier: &recordingNotifier{}}
}

// order registers a confirmed order of two serums for customer; its total is 240000.
func (f *fixture) order(customer kernel.UUID) *order.Order {
	f.t.Helper()
	items := []order.LineItem{{ProductID: "serum-30ml", Quantity: 2, UnitPrice: kernel.MustMoney(120000)}}
	o, err := order.NewOrder(kernel.NewUUID(), customer, customerPhone, items, order.Confirmed, "", nil, time.Now().UTC())
	require.NoError(f.t, err)
	f.store.putOrder(o)
	return o
}

func (f *fixture) open(o *order.Order) *shipment.Attempt {
	f.t.Helper()
	cmd, err := commands.NewOpenAttemptCommand(o.ID(), nil)
	require.NoError(f.t, err)
	h := commands.NewOpenAttemptCommandHandler(f.store)
	a, err := h.Handle(f.ctx, cmd)
	require.NoError(f.t, err)
	return a
}

func (f *fixture) claim(attemptID, staff kernel.UUID) (*shipment.Attempt, error) {
	f.t.Helper()
	cmd, err := commands.NewClaimAttemptCommand(attemptID, staff)
	require.NoError(f.t, err)
	h := commands.NewClaimAttemptCommandHandler(f.store)
	return h.Handle(f.ctx, cmd)
}

func (f *fixture) transition(attemptID, staff kernel.UUID, target shipment.Status, payload shipment.Payload) (*shipment.Attempt, error) {
	f.t.Helper()
	cmd, err := commands.NewTransitionAttemptCommand(attemptID, staff, target, payload)
	require.NoError(f.t, err)
	h := commands.NewTransitionAttemptCommandHandler(f.store, f.notifier)
	return h.Handle(f.ctx, cmd)
}

// outForDelivery opens an attempt for o, claims it for staff and drives it to the door.
func (f *fixture) outForDelivery(o *order.Order, staff kernel.UUID) *shipment.Attempt {
	f.t.Helper()
	a := f.open(o)
	_, err := f.claim(a.ID(), staff)
	require.NoError(f.t, err)
	for _, step := range []shipment.Status{shipment.PickedUp, shipment.InTransit, shipment.OutForDelivery} {
		a, err = f.transition(a.ID(), staff, step, shipment.Payload{})
		require.NoError(f.t, err)
	}
	return a
}

func (f *fixture) createBatch(staff kernel.UUID, orders ...*order.Order) (*batch.Batch, error) {
	f.t.Helper()
	ids := make([]kernel.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID())
	}
	cmd, err := commands.NewCreateBatchCommand(ids, staff, "ground floor, call first")
	require.NoError(f.t, err)
	h := commands.NewCreateBatchCommandHandler(f.store)
	return h.Handle(f.ctx, cmd)
}

func (f *fixture) pickup(code string, staff kernel.UUID) (commands.PickupBatchResult, error) {
	f.t.Helper()
	cmd, err := commands.NewPickupBatchCommand(code, staff)
	require.NoError(f.t, err)
	h := commands.NewPickupBatchCommandHandler(f.store, f.notifier)
	return h.Handle(f.ctx, cmd)
}

func (f *fixture) bulkUpdate(code string, staff kernel.UUID, updates ...commands.MemberUpdate) (commands.BulkUpdateResult, error) {
	f.t.Helper()
	cmd, err := commands.NewBulkUpdateBatchCommand(code, staff, updates)
	require.NoError(f.t, err)
	h := commands.NewBulkUpdateBatchCommandHandler(f.store, f.notifier)
	return h.Handle(f.ctx, cmd)
}

func (f *fixture) completeBatch(code string, staff kernel.UUID, c batch.Completion) (*batch.Batch, error) {
	f.t.Helper()
	cmd, err := commands.NewCompleteBatchCommand(code, staff, c)
	require.NoError(f.t, err)
	h := commands.NewCompleteBatchCommandHandler(f.store)
	return h.Handle(f.ctx, cmd)
}

func (f *fixture) collect(ref cod.Reference, amount kernel.Money) (*cod.Record, error) {
	f.t.Helper()
	cmd, err := commands.NewRecordCollectionCommand(ref, amount, now)
	require.NoError(f.t, err)
	h := commands.NewRecordCollectionCommandHandler(f.store)
	return h.Handle(f.ctx, cmd)
}

// delivered walks o through a full stand-alone delivery with COD collected.
func (f *fixture) delivered(o *order.Order, staff kernel.UUID) *shipment.Attempt {
	f.t.Helper()
	a := f.outForDelivery(o, staff)
	a, err := f.transition(a.ID(), staff, shipment.Delivered, codPayload(o.Total()))
	require.NoError(f.t, err)
	return a
}

func codPayload(amount kernel.Money) shipment.Payload {
	return shipment.Payload{
		CODCollected:    true,
		CollectedAmount: amount,
		ProofPictures:   []string{"https://photos.example.com/proof/door.jpg"},
	}
}

func failedPayload() shipment.Payload {
	return shipment.Payload{UnexpectedCase: "customer not at home", Note: "left a card"}
}
