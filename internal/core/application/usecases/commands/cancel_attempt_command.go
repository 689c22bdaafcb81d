package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCancelAttemptCommandIsNotConstructed = errors.New(
	"CancelAttemptCommand must be created via NewCancelAttemptCommand constructor",
)

// CancelAttemptCommand is the system or admin cancellation of an attempt that
// has not been picked up yet.
type CancelAttemptCommand struct { //nolint:recvcheck //using for validation
	attemptID kernel.UUID
	reason    string

	guard guard.ConstructorGuard
}

func NewCancelAttemptCommand(attemptID kernel.UUID, reason string) (CancelAttemptCommand, error) {
	reason = strings.TrimSpace(reason)

	var reasonErr error
	if reason == "" {
		reasonErr = errs.NewValueIsRequiredError("reason")
	}
	if err := errors.Join(attemptID.Validate(), reasonErr); err != nil {
		return CancelAttemptCommand{}, err
	}

	return CancelAttemptCommand{
		attemptID: attemptID,
		reason:    reason,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CancelAttemptCommand) Validate() error {
	return c.guard.Validate(ErrCancelAttemptCommandIsNotConstructed)
}

func (c CancelAttemptCommand) AttemptID() kernel.UUID { return c.attemptID }
func (c CancelAttemptCommand) Reason() string         { return c.reason }
