package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/pkg/guard"
)

var ErrReviewReturnRequestCommandIsNotConstructed = errors.New(
	"ReviewReturnRequestCommand must be created via NewReviewReturnRequestCommand constructor",
)

// ReviewReturnRequestCommand approves or rejects a pending request.
type ReviewReturnRequestCommand struct { //nolint:recvcheck //using for validation
	requestID  kernel.UUID
	decision   returns.Decision
	reviewerID kernel.UUID
	note       string

	guard guard.ConstructorGuard
}

func NewReviewReturnRequestCommand(
	requestID kernel.UUID,
	decision returns.Decision,
	reviewerID kernel.UUID,
	note string,
) (ReviewReturnRequestCommand, error) {
	if err := errors.Join(requestID.Validate(), decision.Validate(), reviewerID.Validate()); err != nil {
		return ReviewReturnRequestCommand{}, err
	}

	return ReviewReturnRequestCommand{
		requestID:  requestID,
		decision:   decision,
		reviewerID: reviewerID,
		note:       strings.TrimSpace(note),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ReviewReturnRequestCommand) Validate() error {
	return c.guard.Validate(ErrReviewReturnRequestCommandIsNotConstructed)
}

func (c ReviewReturnRequestCommand) RequestID() kernel.UUID     { return c.requestID }
func (c ReviewReturnRequestCommand) Decision() returns.Decision { return c.decision }
func (c ReviewReturnRequestCommand) ReviewerID() kernel.UUID    { return c.reviewerID }
func (c ReviewReturnRequestCommand) Note() string               { return c.note }
