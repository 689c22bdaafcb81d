package guard_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type claimCommand struct {
	attemptID string
	guard     guard.ConstructorGuard
}

var errClaimNotConstructed = errors.New("claimCommand must be created via newClaimCommand")

func newClaimCommand(id string) claimCommand {
	return claimCommand{attemptID: id, guard: guard.NewConstructorGuard()}
}

func (c claimCommand) Validate() error {
	return c.guard.Validate(errClaimNotConstructed)
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed guard passes with custom error", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("unused")))
	})

	t.Run("constructed guard passes with nil error", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero value returns the supplied error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("attempt not constructed")

		err := g.Validate(expected)

		require.ErrorIs(t, err, expected)
	})

	t.Run("zero value with nil error returns default", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_Embedded(t *testing.T) {
	t.Run("struct built by constructor is valid", func(t *testing.T) {
		cmd := newClaimCommand("a-1")

		require.NoError(t, cmd.Validate())
		assert.Equal(t, "a-1", cmd.attemptID)
	})

	t.Run("struct literal is rejected", func(t *testing.T) {
		cmd := claimCommand{attemptID: "a-1"}

		require.ErrorIs(t, cmd.Validate(), errClaimNotConstructed)
	})

	t.Run("copies keep the constructed flag", func(t *testing.T) {
		original := newClaimCommand("a-2")
		copied := original

		require.NoError(t, copied.Validate())
	})
}
