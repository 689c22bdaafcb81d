package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/batch"
)

// BatchRepository defines the persistence contract for batches, keyed by code.
type BatchRepository interface {
	Add(ctx context.Context, aggregate *batch.Batch) error

	// Update is guarded by the aggregate's version like every other aggregate.
	Update(ctx context.Context, aggregate *batch.Batch) error

	Get(ctx context.Context, code string) (*batch.Batch, error)
}
