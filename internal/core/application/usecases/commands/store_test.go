package commands_test

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/core/domain/model/cod"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// memState is one consistent copy of everything the handlers persist.
// Aggregates are stored as snapshots, so mutations of a loaded aggregate never
// leak into the store without an explicit Update.
type memState struct {
	orders   map[kernel.UUID]*order.Order
	attempts map[kernel.UUID]shipment.State
	batches  map[string]batch.State
	records  map[cod.Reference]*cod.Record
	requests map[kernel.UUID]returns.State
	holdings map[assignment.Subject]assignment.Holding
}

func newMemState() *memState {
	return &memState{
		orders:   map[kernel.UUID]*order.Order{},
		attempts: map[kernel.UUID]shipment.State{},
		batches:  map[string]batch.State{},
		records:  map[cod.Reference]*cod.Record{},
		requests: map[kernel.UUID]returns.State{},
		holdings: map[assignment.Subject]assignment.Holding{},
	}
}

func (s *memState) clone() *memState {
	return &memState{
		orders:   maps.Clone(s.orders),
		attempts: maps.Clone(s.attempts),
		batches:  maps.Clone(s.batches),
		records:  maps.Clone(s.records),
		requests: maps.Clone(s.requests),
		holdings: maps.Clone(s.holdings),
	}
}

// memStore is a transactional in-memory backend for command handler tests.
type memStore struct {
	mu    sync.Mutex
	state *memState

	// beforeUpdateAttempt runs once on the next Update of the attempt. A
	// non-nil result fails that Update, simulating a competing writer.
	beforeUpdateAttempt map[kernel.UUID]func() error
}

func newMemStore() *memStore {
	return &memStore{state: newMemState(), beforeUpdateAttempt: map[kernel.UUID]func() error{}}
}

func (s *memStore) Create() commands.UoW {
	return &memUoW{store: s}
}

func (s *memStore) snapshot() *memState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

func (s *memStore) putOrder(o *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.orders[o.ID()] = cloneOrder(o)
}

func (s *memStore) putAttempt(a *shipment.Attempt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.attempts[a.ID()] = a.Snapshot()
}

func (s *memStore) putBatch(b *batch.Batch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.batches[b.Code()] = b.Snapshot()
}

func (s *memStore) putRequest(r *returns.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.requests[r.ID()] = r.Snapshot()
}

func (s *memStore) putHolding(h assignment.Holding) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.holdings[h.Subject] = h
}

func (s *memStore) attempt(id kernel.UUID) *shipment.Attempt {
	a, _ := shipment.RestoreAttempt(s.snapshot().attempts[id])
	return a
}

func (s *memStore) order(id kernel.UUID) *order.Order {
	return cloneOrder(s.snapshot().orders[id])
}

func (s *memStore) record(ref cod.Reference) *cod.Record {
	r, ok := s.snapshot().records[ref]
	if !ok {
		return nil
	}
	return cloneRecord(r)
}

type memUoW struct {
	store *memStore
	tx    *memState
}

func (u *memUoW) Begin(context.Context) error {
	u.tx = u.store.snapshot()
	return nil
}

func (u *memUoW) Commit(context.Context) error {
	if u.tx == nil {
		return errs.NewValueIsRequiredError("transaction")
	}
	u.store.mu.Lock()
	u.store.state = u.tx
	u.store.mu.Unlock()
	u.tx = nil
	return nil
}

func (u *memUoW) Rollback(context.Context) error {
	u.tx = nil
	return nil
}

// view runs f against the transaction, or against the committed state when
// no transaction is open.
func (u *memUoW) view(f func(s *memState) error) error {
	if u.tx != nil {
		return f(u.tx)
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	return f(u.store.state)
}

func (u *memUoW) OrderRepository() ports.OrderRepository                     { return memOrders{u} }
func (u *memUoW) ShippingAttemptRepository() ports.ShippingAttemptRepository { return memAttempts{u} }
func (u *memUoW) BatchRepository() ports.BatchRepository                     { return memBatches{u} }
func (u *memUoW) CODRecordRepository() ports.CODRecordRepository             { return memRecords{u} }
func (u *memUoW) ReturnRequestRepository() ports.ReturnRequestRepository     { return memRequests{u} }
func (u *memUoW) AssignmentRepository() ports.AssignmentRepository           { return memHoldings{u} }

type memOrders struct{ u *memUoW }

func (r memOrders) Add(_ context.Context, o *order.Order) error {
	return r.u.view(func(s *memState) error {
		s.orders[o.ID()] = cloneOrder(o)
		return nil
	})
}

func (r memOrders) Update(_ context.Context, o *order.Order) error {
	return r.u.view(func(s *memState) error {
		stored, ok := s.orders[o.ID()]
		if !ok || stored.Version() != o.Version() {
			return errs.NewVersionIsInvalidError("order", o.ID())
		}
		o.SetVersion(o.Version() + 1)
		s.orders[o.ID()] = cloneOrder(o)
		return nil
	})
}

func (r memOrders) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	var out *order.Order
	err := r.u.view(func(s *memState) error {
		o, ok := s.orders[id]
		if !ok {
			return errs.NewObjectNotFoundError("order", id)
		}
		out = cloneOrder(o)
		return nil
	})
	return out, err
}

type memAttempts struct{ u *memUoW }

func (r memAttempts) Add(_ context.Context, a *shipment.Attempt) error {
	return r.u.view(func(s *memState) error {
		s.attempts[a.ID()] = a.Snapshot()
		return nil
	})
}

func (r memAttempts) Update(_ context.Context, a *shipment.Attempt) error {
	r.u.store.mu.Lock()
	hook, ok := r.u.store.beforeUpdateAttempt[a.ID()]
	delete(r.u.store.beforeUpdateAttempt, a.ID())
	r.u.store.mu.Unlock()
	if ok {
		if err := hook(); err != nil {
			return err
		}
	}

	return r.u.view(func(s *memState) error {
		stored, ok := s.attempts[a.ID()]
		if !ok || stored.Version != a.Version() {
			return errs.NewVersionIsInvalidError("shipping attempt", a.ID())
		}
		a.SetVersion(a.Version() + 1)
		s.attempts[a.ID()] = a.Snapshot()
		return nil
	})
}

func (r memAttempts) Get(_ context.Context, id kernel.UUID) (*shipment.Attempt, error) {
	var out *shipment.Attempt
	err := r.u.view(func(s *memState) error {
		st, ok := s.attempts[id]
		if !ok {
			return errs.NewObjectNotFoundError("shipping attempt", id)
		}
		var err error
		out, err = shipment.RestoreAttempt(st)
		return err
	})
	return out, err
}

func (r memAttempts) list(keep func(shipment.State) bool) ([]*shipment.Attempt, error) {
	var out []*shipment.Attempt
	err := r.u.view(func(s *memState) error {
		for _, st := range s.attempts {
			if !keep(st) {
				continue
			}
			a, err := shipment.RestoreAttempt(st)
			if err != nil {
				return err
			}
			out = append(out, a)
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *shipment.Attempt) int { return a.CreatedAt().Compare(b.CreatedAt()) })
	return out, err
}

func (r memAttempts) ListByOrder(_ context.Context, orderID kernel.UUID) ([]*shipment.Attempt, error) {
	return r.list(func(st shipment.State) bool { return st.OrderID == orderID })
}

func (r memAttempts) ListByBatch(_ context.Context, code string) ([]*shipment.Attempt, error) {
	return r.list(func(st shipment.State) bool { return st.BatchCode == code })
}

func (r memAttempts) ListByCustomer(_ context.Context, customerID kernel.UUID) ([]*shipment.Attempt, error) {
	return r.list(func(st shipment.State) bool { return st.CustomerID == customerID && !st.Status.IsTerminal() })
}

func (r memAttempts) ListStalePending(_ context.Context, olderThan time.Time, limit int) ([]*shipment.Attempt, error) {
	out, err := r.list(func(st shipment.State) bool {
		return st.Status == shipment.Pending && st.Assignee == nil && st.CreatedAt.Before(olderThan)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, err
}

func (r memAttempts) CountActiveByStaff(context.Context) (map[kernel.UUID]int, error) {
	counts := map[kernel.UUID]int{}
	err := r.u.view(func(s *memState) error {
		for _, st := range s.attempts {
			if st.Assignee != nil && !st.Status.IsTerminal() {
				counts[*st.Assignee]++
			}
		}
		return nil
	})
	return counts, err
}

type memBatches struct{ u *memUoW }

func (r memBatches) Add(_ context.Context, b *batch.Batch) error {
	return r.u.view(func(s *memState) error {
		s.batches[b.Code()] = b.Snapshot()
		return nil
	})
}

func (r memBatches) Update(_ context.Context, b *batch.Batch) error {
	return r.u.view(func(s *memState) error {
		stored, ok := s.batches[b.Code()]
		if !ok || stored.Version != b.Version() {
			return errs.NewVersionIsInvalidError("batch", b.Code())
		}
		b.SetVersion(b.Version() + 1)
		s.batches[b.Code()] = b.Snapshot()
		return nil
	})
}

func (r memBatches) Get(_ context.Context, code string) (*batch.Batch, error) {
	var out *batch.Batch
	err := r.u.view(func(s *memState) error {
		st, ok := s.batches[code]
		if !ok {
			return errs.NewObjectNotFoundError("batch", code)
		}
		var err error
		out, err = batch.RestoreBatch(st)
		return err
	})
	return out, err
}

type memRecords struct{ u *memUoW }

func (r memRecords) Add(_ context.Context, rec *cod.Record) error {
	return r.u.view(func(s *memState) error {
		if _, ok := s.records[rec.Ref()]; ok {
			return cod.ErrCollectionAlreadyRecorded
		}
		s.records[rec.Ref()] = cloneRecord(rec)
		return nil
	})
}

func (r memRecords) Update(_ context.Context, rec *cod.Record) error {
	return r.u.view(func(s *memState) error {
		stored, ok := s.records[rec.Ref()]
		if !ok || stored.Version() != rec.Version() {
			return errs.NewVersionIsInvalidError("cod record", rec.ID())
		}
		rec.SetVersion(rec.Version() + 1)
		s.records[rec.Ref()] = cloneRecord(rec)
		return nil
	})
}

func (r memRecords) Find(_ context.Context, ref cod.Reference) (*cod.Record, error) {
	var out *cod.Record
	err := r.u.view(func(s *memState) error {
		rec, ok := s.records[ref]
		if !ok {
			return errs.NewObjectNotFoundError("cod record", ref)
		}
		out = cloneRecord(rec)
		return nil
	})
	return out, err
}

func (r memRecords) FindForUpdate(ctx context.Context, ref cod.Reference) (*cod.Record, error) {
	return r.Find(ctx, ref)
}

type memRequests struct{ u *memUoW }

func (r memRequests) Add(_ context.Context, req *returns.Request) error {
	return r.u.view(func(s *memState) error {
		for _, st := range s.requests {
			if st.OrderID == req.OrderID() && !st.Status.IsTerminal() {
				return returns.ErrDuplicateRequest
			}
		}
		s.requests[req.ID()] = req.Snapshot()
		return nil
	})
}

func (r memRequests) Update(_ context.Context, req *returns.Request) error {
	return r.u.view(func(s *memState) error {
		stored, ok := s.requests[req.ID()]
		if !ok || stored.Version != req.Version() {
			return errs.NewVersionIsInvalidError("return request", req.ID())
		}
		req.SetVersion(req.Version() + 1)
		s.requests[req.ID()] = req.Snapshot()
		return nil
	})
}

func (r memRequests) Get(_ context.Context, id kernel.UUID) (*returns.Request, error) {
	var out *returns.Request
	err := r.u.view(func(s *memState) error {
		st, ok := s.requests[id]
		if !ok {
			return errs.NewObjectNotFoundError("return request", id)
		}
		var err error
		out, err = returns.RestoreRequest(st)
		return err
	})
	return out, err
}

func (r memRequests) ListByOrder(_ context.Context, orderID kernel.UUID) ([]*returns.Request, error) {
	var out []*returns.Request
	err := r.u.view(func(s *memState) error {
		for _, st := range s.requests {
			if st.OrderID != orderID {
				continue
			}
			req, err := returns.RestoreRequest(st)
			if err != nil {
				return err
			}
			out = append(out, req)
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *returns.Request) int { return a.CreatedAt().Compare(b.CreatedAt()) })
	return out, err
}

type memHoldings struct{ u *memUoW }

func (r memHoldings) TryInsert(_ context.Context, h assignment.Holding) (bool, error) {
	inserted := false
	err := r.u.view(func(s *memState) error {
		if _, ok := s.holdings[h.Subject]; ok {
			return nil
		}
		s.holdings[h.Subject] = h
		inserted = true
		return nil
	})
	return inserted, err
}

func (r memHoldings) Get(_ context.Context, subject assignment.Subject) (assignment.Holding, error) {
	var out assignment.Holding
	err := r.u.view(func(s *memState) error {
		h, ok := s.holdings[subject]
		if !ok {
			return errs.NewObjectNotFoundError("holding", subject)
		}
		out = h
		return nil
	})
	return out, err
}

func (r memHoldings) Delete(_ context.Context, subject assignment.Subject) error {
	return r.u.view(func(s *memState) error {
		delete(s.holdings, subject)
		return nil
	})
}

func cloneOrder(o *order.Order) *order.Order {
	if o == nil {
		return nil
	}
	c, err := order.RestoreOrder(
		o.ID(), o.CustomerID(), o.ContactPhone(), o.Items(), o.Status(), o.UpstreamReason(),
		o.ProcessedBy(), o.ReturnedAt(), o.CreatedAt(), o.UpdatedAt(), o.Version(),
	)
	if err != nil {
		panic(err)
	}
	return c
}

func cloneRecord(r *cod.Record) *cod.Record {
	c, err := cod.RestoreRecord(r.ID(), r.Ref(), r.Collected(), r.CollectedAt(), r.Transfers(), r.Version())
	if err != nil {
		panic(err)
	}
	return c
}

// recordingNotifier keeps every notification it is asked to send.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []ports.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, notification ports.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
}

func (n *recordingNotifier) kinds() []ports.NotificationKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]ports.NotificationKind, 0, len(n.sent))
	for _, s := range n.sent {
		out = append(out, s.Kind)
	}
	return out
}
