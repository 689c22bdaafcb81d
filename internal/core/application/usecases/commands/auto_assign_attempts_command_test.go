package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStaffDirectory struct{ mock.Mock }

func (m *MockStaffDirectory) ActiveStaff(ctx context.Context) ([]kernel.UUID, error) {
	args := m.Called(ctx)
	staff, _ := args.Get(0).([]kernel.UUID)
	return staff, args.Error(1)
}

func staleAttempt(t *testing.T, f *fixture, age time.Duration) *shipment.Attempt {
	t.Helper()
	o := f.order(kernel.NewUUID())
	a, err := shipment.NewAttempt(kernel.NewUUID(), o.ID(), o.CustomerID(), o.Total(), nil, time.Now().UTC().Add(-age))
	require.NoError(t, err)
	f.store.putAttempt(a)
	return a
}

func TestAutoAssignAttempts(t *testing.T) {
	t.Run("spreads stale attempts over the least loaded staff", func(t *testing.T) {
		f := newFixture(t)
		alice, bob := kernel.NewUUID(), kernel.NewUUID()
		busy := f.open(f.order(kernel.NewUUID()))
		_, err := f.claim(busy.ID(), alice)
		require.NoError(t, err)

		first := staleAttempt(t, f, 30*time.Hour)
		second := staleAttempt(t, f, 26*time.Hour)
		fresh := staleAttempt(t, f, time.Hour)

		directory := new(MockStaffDirectory)
		directory.On("ActiveStaff", mock.Anything).Return([]kernel.UUID{alice, bob}, nil).Once()

		cmd, err := commands.NewAutoAssignAttemptsCommand(24*time.Hour, 10)
		require.NoError(t, err)
		h := commands.NewAutoAssignAttemptsCommandHandler(f.store, directory)
		res, err := h.Handle(f.ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, commands.AutoAssignResult{Assigned: 2}, res)
		assert.True(t, f.store.attempt(first.ID()).IsAssignedTo(bob), "bob has no load yet")
		assert.True(t, f.store.attempt(second.ID()).IsAssignedTo(alice), "tie goes to the first listed")
		assert.Equal(t, shipment.Pending, f.store.attempt(fresh.ID()).Status())
		_, held := f.store.snapshot().holdings[assignment.AttemptSubject(first.ID())]
		assert.True(t, held)
		directory.AssertExpectations(t)
	})

	t.Run("manual claim in between is skipped", func(t *testing.T) {
		f := newFixture(t)
		alice, bob := kernel.NewUUID(), kernel.NewUUID()
		a := staleAttempt(t, f, 48*time.Hour)
		f.store.beforeUpdateAttempt[a.ID()] = func() error {
			won := f.store.attempt(a.ID())
			require.NoError(t, won.Claim(bob, now))
			won.SetVersion(won.Version() + 1)
			f.store.putAttempt(won)
			return errs.NewVersionIsInvalidError("shipping attempt", a.ID())
		}

		directory := new(MockStaffDirectory)
		directory.On("ActiveStaff", mock.Anything).Return([]kernel.UUID{alice}, nil)

		cmd, err := commands.NewAutoAssignAttemptsCommand(24*time.Hour, 10)
		require.NoError(t, err)
		h := commands.NewAutoAssignAttemptsCommandHandler(f.store, directory)
		res, err := h.Handle(f.ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, commands.AutoAssignResult{Skipped: 1}, res)
		assert.True(t, f.store.attempt(a.ID()).IsAssignedTo(bob))
	})

	t.Run("nobody on shift", func(t *testing.T) {
		f := newFixture(t)
		directory := new(MockStaffDirectory)
		directory.On("ActiveStaff", mock.Anything).Return([]kernel.UUID{}, nil)

		cmd, err := commands.NewAutoAssignAttemptsCommand(24*time.Hour, 10)
		require.NoError(t, err)
		h := commands.NewAutoAssignAttemptsCommandHandler(f.store, directory)
		_, err = h.Handle(f.ctx, cmd)

		require.ErrorIs(t, err, services.ErrNoStaffAvailable)
	})

	t.Run("invalid parameters", func(t *testing.T) {
		_, err := commands.NewAutoAssignAttemptsCommand(0, 0)
		require.Error(t, err)
	})
}
