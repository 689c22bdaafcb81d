package kernel_test

import (
	"math"
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should accept zero and positive amounts", func(t *testing.T) {
		zero, err := kernel.NewMoney(0)
		require.NoError(t, err)
		assert.True(t, zero.IsZero())

		m, err := kernel.NewMoney(150000)
		require.NoError(t, err)
		assert.Equal(t, int64(150000), m.Amount())
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(-1)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	a := kernel.MustMoney(300)
	b := kernel.MustMoney(200)

	t.Run("add", func(t *testing.T) {
		sum, err := a.Add(b)

		require.NoError(t, err)
		assert.True(t, sum.IsEqual(kernel.MustMoney(500)))
	})

	t.Run("add overflow", func(t *testing.T) {
		_, err := kernel.MustMoney(math.MaxInt64).Add(kernel.MustMoney(1))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("sub", func(t *testing.T) {
		diff, err := a.Sub(b)

		require.NoError(t, err)
		assert.Equal(t, int64(100), diff.Amount())
	})

	t.Run("sub below zero", func(t *testing.T) {
		_, err := b.Sub(a)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("multiply", func(t *testing.T) {
		total, err := b.Multiply(3)

		require.NoError(t, err)
		assert.Equal(t, int64(600), total.Amount())
	})

	t.Run("compare", func(t *testing.T) {
		assert.True(t, a.GreaterThan(b))
		assert.False(t, b.GreaterThan(a))
		assert.False(t, a.IsEqual(b))
	})
}
