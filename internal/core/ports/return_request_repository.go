package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"
)

// ReturnRequestRepository defines the persistence contract for return requests.
type ReturnRequestRepository interface {
	// Add persists a new request. Storage enforces one non-terminal request per
	// order and reports a violation as returns.ErrDuplicateRequest.
	Add(ctx context.Context, aggregate *returns.Request) error

	Update(ctx context.Context, aggregate *returns.Request) error

	Get(ctx context.Context, id kernel.UUID) (*returns.Request, error)

	// ListByOrder returns every request of the order, oldest first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*returns.Request, error)
}
