package shipment_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStatuses() []shipment.Status {
	return []shipment.Status{
		shipment.Pending, shipment.Assigned, shipment.PickedUp, shipment.InTransit,
		shipment.OutForDelivery, shipment.Delivered, shipment.Failed, shipment.Returned, shipment.Cancelled,
	}
}

func TestStatus_CanTransitionTo(t *testing.T) {
	allowed := map[shipment.Status][]shipment.Status{
		shipment.Assigned:       {shipment.PickedUp, shipment.Cancelled},
		shipment.PickedUp:       {shipment.InTransit, shipment.Failed, shipment.Returned},
		shipment.InTransit:      {shipment.OutForDelivery, shipment.Failed, shipment.Returned},
		shipment.OutForDelivery: {shipment.Delivered, shipment.Failed, shipment.Returned, shipment.Cancelled},
	}

	for _, from := range allStatuses() {
		for _, to := range allStatuses() {
			expected := false
			for _, target := range allowed[from] {
				if target == to {
					expected = true
				}
			}
			assert.Equal(t, expected, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	terminal := map[shipment.Status]bool{
		shipment.Delivered: true, shipment.Failed: true, shipment.Returned: true, shipment.Cancelled: true,
	}
	for _, s := range allStatuses() {
		assert.Equal(t, terminal[s], s.IsTerminal(), s.String())
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range allStatuses() {
		parsed, err := shipment.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := shipment.ParseStatus("UNKNOWN")
	require.Error(t, err)
	_, err = shipment.ParseStatus("LOST")
	require.Error(t, err)
}

func TestStatus_Validate(t *testing.T) {
	require.Error(t, shipment.Unknown.Validate())
	require.Error(t, shipment.Status(42).Validate())
	require.NoError(t, shipment.OutForDelivery.Validate())
}
