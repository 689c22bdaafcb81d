package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetReturnRequestQueryIsNotConstructed = errors.New(
	"GetReturnRequestQuery must be created via NewGetReturnRequestQuery constructor",
)

// GetReturnRequestQuery reads one return request.
type GetReturnRequestQuery struct {
	id    kernel.UUID
	guard guard.ConstructorGuard
}

func NewGetReturnRequestQuery(id kernel.UUID) (GetReturnRequestQuery, error) {
	if err := id.Validate(); err != nil {
		return GetReturnRequestQuery{}, err
	}
	return GetReturnRequestQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetReturnRequestQuery) Validate() error {
	return q.guard.Validate(ErrGetReturnRequestQueryIsNotConstructed)
}

func (q GetReturnRequestQuery) ID() kernel.UUID { return q.id }
