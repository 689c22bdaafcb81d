package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
)

// ShippingAttemptRepository defines the persistence contract for shipping attempts.
type ShippingAttemptRepository interface {
	Add(ctx context.Context, aggregate *shipment.Attempt) error

	// Update writes the attempt only if the stored version still equals the
	// aggregate's version. Otherwise errs.ErrVersionIsInvalid is returned and
	// nothing is written.
	Update(ctx context.Context, aggregate *shipment.Attempt) error

	Get(ctx context.Context, id kernel.UUID) (*shipment.Attempt, error)

	// ListByOrder returns the full attempt history of an order, oldest first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*shipment.Attempt, error)

	// ListByBatch returns the members of a batch in no particular order.
	ListByBatch(ctx context.Context, batchCode string) ([]*shipment.Attempt, error)

	// ListByCustomer returns every non-terminal attempt of a customer, oldest first.
	ListByCustomer(ctx context.Context, customerID kernel.UUID) ([]*shipment.Attempt, error)

	// ListStalePending returns up to limit PENDING unassigned attempts created before olderThan.
	ListStalePending(ctx context.Context, olderThan time.Time, limit int) ([]*shipment.Attempt, error)

	// CountActiveByStaff returns, per staff member, the number of non-terminal attempts held.
	CountActiveByStaff(ctx context.Context) (map[kernel.UUID]int, error)
}
