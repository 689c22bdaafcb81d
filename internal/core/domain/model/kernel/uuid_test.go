package kernel_test

import (
	"encoding/json"
	"testing"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	t.Run("should create a valid random UUID", func(t *testing.T) {
		id := kernel.NewUUID()

		require.NoError(t, id.Validate())
		assert.False(t, id.IsZero())
		assert.NotEqual(t, uuid.Nil.String(), id.String())
	})

	t.Run("should create unique UUIDs", func(t *testing.T) {
		id1 := kernel.NewUUID()
		id2 := kernel.NewUUID()

		assert.False(t, id1.IsEqual(id2))
	})
}

func TestUUIDFromString(t *testing.T) {
	t.Run("should parse canonical form", func(t *testing.T) {
		id, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")

		require.NoError(t, err)
		assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", id.String())
	})

	t.Run("should reject garbage", func(t *testing.T) {
		_, err := kernel.UUIDFromString("not-a-uuid")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid UUID format")
	})

	t.Run("should reject the nil UUID", func(t *testing.T) {
		_, err := kernel.UUIDFromString(uuid.Nil.String())

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("should round trip through bytes", func(t *testing.T) {
		original := kernel.NewUUID()
		raw := original.Bytes()

		restored, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, original.IsEqual(restored))
	})

	t.Run("should reject wrong length", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{1, 2, 3})

		require.Error(t, err)
	})

	t.Run("should reject all zero bytes", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestUUID_Validate(t *testing.T) {
	var zero kernel.UUID

	require.ErrorIs(t, zero.Validate(), kernel.ErrUUIDIsNotConstructed)
	assert.True(t, zero.IsZero())
}

func TestUUID_JSON(t *testing.T) {
	type payload struct {
		StaffID kernel.UUID `json:"staffId"`
	}

	t.Run("should encode as string", func(t *testing.T) {
		id, _ := kernel.UUIDFromString("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

		data, err := json.Marshal(payload{StaffID: id})

		require.NoError(t, err)
		assert.JSONEq(t, `{"staffId":"6ba7b810-9dad-11d1-80b4-00c04fd430c8"}`, string(data))
	})

	t.Run("should reject invalid value when decoding", func(t *testing.T) {
		var p payload

		err := json.Unmarshal([]byte(`{"staffId":"oops"}`), &p)

		require.Error(t, err)
	})
}

func TestSameHolder(t *testing.T) {
	staff := kernel.NewUUID()
	other := kernel.NewUUID()

	assert.True(t, kernel.SameHolder(&staff, staff))
	assert.False(t, kernel.SameHolder(&other, staff))
	assert.False(t, kernel.SameHolder(nil, staff))
}

func TestUUIDFromOptional(t *testing.T) {
	t.Run("null column is nil", func(t *testing.T) {
		id, err := kernel.UUIDFromOptional(nil)

		require.NoError(t, err)
		assert.Nil(t, id)
	})

	t.Run("should keep the stored value", func(t *testing.T) {
		raw := uuid.New()

		id, err := kernel.UUIDFromOptional(&raw)

		require.NoError(t, err)
		require.NotNil(t, id)
		assert.Equal(t, raw, id.Bytes())
	})

	t.Run("should reject the nil uuid", func(t *testing.T) {
		raw := uuid.Nil

		_, err := kernel.UUIDFromOptional(&raw)

		require.Error(t, err)
	})
}
