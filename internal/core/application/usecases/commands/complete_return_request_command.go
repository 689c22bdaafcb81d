package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCompleteReturnRequestCommandIsNotConstructed = errors.New(
	"CompleteReturnRequestCommand must be created via NewCompleteReturnRequestCommand constructor",
)

// CompleteReturnRequestCommand confirms the goods arrived at the warehouse.
// An empty note is rejected by the request itself.
type CompleteReturnRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	staffID   kernel.UUID
	note      string
	photos    []string

	guard guard.ConstructorGuard
}

func NewCompleteReturnRequestCommand(requestID, staffID kernel.UUID, note string, photos []string) (CompleteReturnRequestCommand, error) {
	if err := errors.Join(requestID.Validate(), staffID.Validate()); err != nil {
		return CompleteReturnRequestCommand{}, err
	}

	return CompleteReturnRequestCommand{
		requestID: requestID,
		staffID:   staffID,
		note:      note,
		photos:    cleanPayloadPictures(photos),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteReturnRequestCommand) Validate() error {
	return c.guard.Validate(ErrCompleteReturnRequestCommandIsNotConstructed)
}

func (c CompleteReturnRequestCommand) RequestID() kernel.UUID { return c.requestID }
func (c CompleteReturnRequestCommand) StaffID() kernel.UUID   { return c.staffID }
func (c CompleteReturnRequestCommand) Note() string           { return c.note }
func (c CompleteReturnRequestCommand) Photos() []string       { return append([]string(nil), c.photos...) }
