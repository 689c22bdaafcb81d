package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrClaimAttemptCommandIsNotConstructed = errors.New(
	"ClaimAttemptCommand must be created via NewClaimAttemptCommand constructor",
)

// ClaimAttemptCommand assigns a PENDING attempt to the calling staff member.
type ClaimAttemptCommand struct { //nolint:recvcheck //using for validation
	attemptID kernel.UUID
	staffID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewClaimAttemptCommand(attemptID, staffID kernel.UUID) (ClaimAttemptCommand, error) {
	if err := errors.Join(attemptID.Validate(), staffID.Validate()); err != nil {
		return ClaimAttemptCommand{}, err
	}

	return ClaimAttemptCommand{
		attemptID: attemptID,
		staffID:   staffID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ClaimAttemptCommand) Validate() error {
	return c.guard.Validate(ErrClaimAttemptCommandIsNotConstructed)
}

func (c ClaimAttemptCommand) AttemptID() kernel.UUID { return c.attemptID }
func (c ClaimAttemptCommand) StaffID() kernel.UUID   { return c.staffID }
