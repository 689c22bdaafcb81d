package commands

import (
	"errors"
	"slices"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/guard"
)

var ErrTransitionAttemptCommandIsNotConstructed = errors.New(
	"TransitionAttemptCommand must be created via NewTransitionAttemptCommand constructor",
)

// TransitionAttemptCommand moves an attempt along its lifecycle on behalf of
// the assignee. The payload is only meaningful for outcome states.
//
// Example:
//
//	payload := shipment.Payload{CODCollected: true, CollectedAmount: kernel.MustMoney(250000),
//	    ProofPictures: []string{"s3://proof/1.jpg"}}
//	cmd, err := NewTransitionAttemptCommand(attemptID, staffID, shipment.Delivered, payload)
type TransitionAttemptCommand struct { //nolint:recvcheck //using for validation
	attemptID kernel.UUID
	staffID   kernel.UUID
	target    shipment.Status
	payload   shipment.Payload

	guard guard.ConstructorGuard
}

func NewTransitionAttemptCommand(
	attemptID, staffID kernel.UUID,
	target shipment.Status,
	payload shipment.Payload,
) (TransitionAttemptCommand, error) {
	if err := errors.Join(attemptID.Validate(), staffID.Validate(), target.Validate()); err != nil {
		return TransitionAttemptCommand{}, err
	}

	return TransitionAttemptCommand{
		attemptID: attemptID,
		staffID:   staffID,
		target:    target,
		payload:   cleanPayload(payload),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionAttemptCommand) Validate() error {
	return c.guard.Validate(ErrTransitionAttemptCommandIsNotConstructed)
}

func (c TransitionAttemptCommand) AttemptID() kernel.UUID    { return c.attemptID }
func (c TransitionAttemptCommand) StaffID() kernel.UUID      { return c.staffID }
func (c TransitionAttemptCommand) Target() shipment.Status   { return c.target }
func (c TransitionAttemptCommand) Payload() shipment.Payload { return c.payload }

func cleanPayload(p shipment.Payload) shipment.Payload {
	p.ProofPictures = cleanPayloadPictures(p.ProofPictures)
	return p
}

// cleanPayloadPictures drops blank URIs so an empty list is the same as none.
func cleanPayloadPictures(uris []string) []string {
	uris = slices.DeleteFunc(slices.Clone(uris), func(s string) bool {
		return strings.TrimSpace(s) == ""
	})
	if len(uris) == 0 {
		return nil
	}
	return uris
}
