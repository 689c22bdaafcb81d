package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/core/domain/model/cod"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandConstructors_RejectInvalidInput(t *testing.T) {
	id := kernel.NewUUID()

	tests := []struct {
		name string
		new  func() error
		want error
	}{
		{"register without items", func() error {
			_, err := commands.NewRegisterOrderCommand(id, id, "", nil, order.Confirmed, "", nil)
			return err
		}, errs.ErrValueIsRequired},
		{"register with zero customer", func() error {
			items := []order.LineItem{{ProductID: "p", Quantity: 1}}
			_, err := commands.NewRegisterOrderCommand(id, kernel.UUID{}, "", items, order.Confirmed, "", nil)
			return err
		}, kernel.ErrUUIDIsNotConstructed},
		{"claim without staff", func() error {
			_, err := commands.NewClaimAttemptCommand(id, kernel.UUID{})
			return err
		}, kernel.ErrUUIDIsNotConstructed},
		{"transition to unknown status", func() error {
			_, err := commands.NewTransitionAttemptCommand(id, id, shipment.Unknown, shipment.Payload{})
			return err
		}, errs.ErrValueIsInvalid},
		{"cancel without reason", func() error {
			_, err := commands.NewCancelAttemptCommand(id, "  ")
			return err
		}, errs.ErrValueIsRequired},
		{"batch without orders", func() error {
			_, err := commands.NewCreateBatchCommand(nil, id, "")
			return err
		}, errs.ErrValueIsRequired},
		{"pickup without code", func() error {
			_, err := commands.NewPickupBatchCommand(" ", id)
			return err
		}, errs.ErrValueIsRequired},
		{"bulk update listing an order twice", func() error {
			u := commands.MemberUpdate{OrderID: id, Target: shipment.PickedUp}
			_, err := commands.NewBulkUpdateBatchCommand("BATCH-20250301-ABCDEF", id, []commands.MemberUpdate{u, u})
			return err
		}, errs.ErrValueIsInvalid},
		{"complete without code", func() error {
			_, err := commands.NewCompleteBatchCommand("", id, batch.Completion{})
			return err
		}, errs.ErrValueIsRequired},
		{"collection for unknown reference kind", func() error {
			_, err := commands.NewRecordCollectionCommand(cod.Reference{Kind: cod.RefKind("ROUTE"), ID: "42"}, kernel.Zero, time.Time{})
			return err
		}, errs.ErrValueIsInvalid},
		{"return with unknown reason", func() error {
			_, err := commands.NewOpenReturnRequestCommand(id, id, returns.Reason("BORED"), "", nil)
			return err
		}, errs.ErrValueIsInvalid},
		{"review with unknown decision", func() error {
			_, err := commands.NewReviewReturnRequestCommand(id, returns.Decision("MAYBE"), id, "")
			return err
		}, errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.new()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCommands_NotConstructed(t *testing.T) {
	assert.ErrorIs(t, commands.ClaimAttemptCommand{}.Validate(), commands.ErrClaimAttemptCommandIsNotConstructed)
	assert.ErrorIs(t, commands.BulkUpdateBatchCommand{}.Validate(), commands.ErrBulkUpdateBatchCommandIsNotConstructed)
	assert.ErrorIs(t, commands.RecordTransferCommand{}.Validate(), commands.ErrRecordTransferCommandIsNotConstructed)
	assert.ErrorIs(t, commands.CancelReturnRequestCommand{}.Validate(), commands.ErrCancelReturnRequestCommandIsNotConstructed)
}

func TestTransitionAttemptCommand_DropsBlankPictures(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewTransitionAttemptCommand(id, id, shipment.PickedUp, shipment.Payload{ProofPictures: []string{"", "  "}})
	require.NoError(t, err)
	assert.True(t, cmd.Payload().IsEmpty())
}
