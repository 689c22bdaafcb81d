package commands

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAutoAssignAttemptsCommandIsNotConstructed = errors.New(
	"AutoAssignAttemptsCommand must be created via NewAutoAssignAttemptsCommand constructor",
)

// AutoAssignAttemptsCommand hands attempts that stayed unclaimed for too long
// to active staff members.
type AutoAssignAttemptsCommand struct { //nolint:recvcheck //using for validation
	olderThan time.Duration
	limit     int

	guard guard.ConstructorGuard
}

func NewAutoAssignAttemptsCommand(olderThan time.Duration, limit int) (AutoAssignAttemptsCommand, error) {
	var problems []error
	if olderThan <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("olderThan", fmt.Errorf("%s is not positive", olderThan)))
	}
	if limit <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded"))
	}
	if err := errors.Join(problems...); err != nil {
		return AutoAssignAttemptsCommand{}, err
	}

	return AutoAssignAttemptsCommand{
		olderThan: olderThan,
		limit:     limit,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AutoAssignAttemptsCommand) Validate() error {
	return c.guard.Validate(ErrAutoAssignAttemptsCommandIsNotConstructed)
}

func (c AutoAssignAttemptsCommand) OlderThan() time.Duration { return c.olderThan }
func (c AutoAssignAttemptsCommand) Limit() int               { return c.limit }
