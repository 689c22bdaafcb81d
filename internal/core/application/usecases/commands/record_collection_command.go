package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/cod"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRecordCollectionCommandIsNotConstructed = errors.New(
	"RecordCollectionCommand must be created via NewRecordCollectionCommand constructor",
)

// RecordCollectionCommand records cash collected for an attempt or a batch
// that was not captured by its delivery flow.
type RecordCollectionCommand struct { //nolint:recvcheck //using for validation
	ref         cod.Reference
	amount      kernel.Money
	collectedAt time.Time

	guard guard.ConstructorGuard
}

// NewRecordCollectionCommand takes a zero collectedAt to mean "now".
func NewRecordCollectionCommand(ref cod.Reference, amount kernel.Money, collectedAt time.Time) (RecordCollectionCommand, error) {
	if err := ref.Validate(); err != nil {
		return RecordCollectionCommand{}, err
	}

	return RecordCollectionCommand{
		ref:         ref,
		amount:      amount,
		collectedAt: collectedAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RecordCollectionCommand) Validate() error {
	return c.guard.Validate(ErrRecordCollectionCommandIsNotConstructed)
}

func (c RecordCollectionCommand) Ref() cod.Reference     { return c.ref }
func (c RecordCollectionCommand) Amount() kernel.Money   { return c.amount }
func (c RecordCollectionCommand) CollectedAt() time.Time { return c.collectedAt }
