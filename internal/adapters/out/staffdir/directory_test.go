package staffdir

import (
	"context"
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	alice, bob := kernel.NewUUID(), kernel.NewUUID()

	dir, err := Parse(" " + alice.String() + ",," + bob.String() + "," + alice.String())
	require.NoError(t, err)

	staff, err := dir.ActiveStaff(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []kernel.UUID{alice, bob}, staff)
}

func TestParse_Empty(t *testing.T) {
	dir, err := Parse("")
	require.NoError(t, err)

	staff, err := dir.ActiveStaff(context.Background())
	require.NoError(t, err)
	assert.Empty(t, staff)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("not-a-uuid")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestActiveStaff_ReturnsCopy(t *testing.T) {
	alice := kernel.NewUUID()
	dir := NewStatic([]kernel.UUID{alice})

	staff, _ := dir.ActiveStaff(context.Background())
	staff[0] = kernel.NewUUID()

	again, _ := dir.ActiveStaff(context.Background())
	assert.Equal(t, []kernel.UUID{alice}, again)
}
