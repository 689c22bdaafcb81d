package queries

import (
	"errors"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetBatchQueryIsNotConstructed = errors.New("GetBatchQuery must be created via NewGetBatchQuery constructor")

// GetBatchQuery reads a batch and its members.
type GetBatchQuery struct {
	code  string
	guard guard.ConstructorGuard
}

func NewGetBatchQuery(code string) (GetBatchQuery, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return GetBatchQuery{}, errs.NewValueIsRequiredError("batch code")
	}
	return GetBatchQuery{code: code, guard: guard.NewConstructorGuard()}, nil
}

func (q GetBatchQuery) Validate() error {
	return q.guard.Validate(ErrGetBatchQueryIsNotConstructed)
}

func (q GetBatchQuery) Code() string { return q.code }

// GetBatchQueryResponse lists members in batch order.
type GetBatchQueryResponse struct {
	BatchView
	Members []AttemptView
}
