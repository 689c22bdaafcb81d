package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCompleteBatchCommandIsNotConstructed = errors.New(
	"CompleteBatchCommand must be created via NewCompleteBatchCommand constructor",
)

// CompleteBatchCommand closes a batch once every member is terminal.
type CompleteBatchCommand struct { //nolint:recvcheck //using for validation
	batchCode  string
	staffID    kernel.UUID
	completion batch.Completion

	guard guard.ConstructorGuard
}

func NewCompleteBatchCommand(batchCode string, staffID kernel.UUID, completion batch.Completion) (CompleteBatchCommand, error) {
	code, err := batchCodeParam(batchCode)
	if err = errors.Join(err, staffID.Validate()); err != nil {
		return CompleteBatchCommand{}, err
	}

	completion.Photos = cleanPayloadPictures(completion.Photos)

	return CompleteBatchCommand{
		batchCode:  code,
		staffID:    staffID,
		completion: completion,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteBatchCommand) Validate() error {
	return c.guard.Validate(ErrCompleteBatchCommandIsNotConstructed)
}

func (c CompleteBatchCommand) BatchCode() string            { return c.batchCode }
func (c CompleteBatchCommand) StaffID() kernel.UUID         { return c.staffID }
func (c CompleteBatchCommand) Completion() batch.Completion { return c.completion }
