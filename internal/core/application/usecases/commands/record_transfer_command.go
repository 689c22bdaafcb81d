package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/cod"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRecordTransferCommandIsNotConstructed = errors.New(
	"RecordTransferCommand must be created via NewRecordTransferCommand constructor",
)

// RecordTransferCommand records cash handed over to the business against a
// collected reference.
type RecordTransferCommand struct { //nolint:recvcheck //using for validation
	ref           cod.Reference
	amount        kernel.Money
	transferredAt time.Time

	guard guard.ConstructorGuard
}

// NewRecordTransferCommand takes a zero transferredAt to mean "now".
func NewRecordTransferCommand(ref cod.Reference, amount kernel.Money, transferredAt time.Time) (RecordTransferCommand, error) {
	var amountErr error
	if amount.IsZero() {
		amountErr = errs.NewValueIsInvalidErrorWithCause("amount", errors.New("transfer amount must be positive"))
	}
	if err := errors.Join(ref.Validate(), amountErr); err != nil {
		return RecordTransferCommand{}, err
	}

	return RecordTransferCommand{
		ref:           ref,
		amount:        amount,
		transferredAt: transferredAt,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c RecordTransferCommand) Validate() error {
	return c.guard.Validate(ErrRecordTransferCommandIsNotConstructed)
}

func (c RecordTransferCommand) Ref() cod.Reference       { return c.ref }
func (c RecordTransferCommand) Amount() kernel.Money     { return c.amount }
func (c RecordTransferCommand) TransferredAt() time.Time { return c.transferredAt }
