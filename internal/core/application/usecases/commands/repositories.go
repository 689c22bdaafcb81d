// Package commands contains the write operations of the fulfillment service.
// Every command follows the same pattern: a constructor validates input, the
// handler opens a unit of work, mutates aggregates through repositories and
// commits. Notifications are sent only after a successful commit.
package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// AttemptRepoFactory provides access to shipping attempts within a transaction.
	AttemptRepoFactory interface {
		ShippingAttemptRepository() ports.ShippingAttemptRepository
	}

	BatchRepoFactory interface {
		BatchRepository() ports.BatchRepository
	}

	CODRepoFactory interface {
		CODRecordRepository() ports.CODRecordRepository
	}

	ReturnRepoFactory interface {
		ReturnRequestRepository() ports.ReturnRequestRepository
	}

	// AssignmentRepoFactory provides the storage behind the staff assignment registry.
	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions spanning orders, attempts, batches, COD records,
	// return requests and staff holdings.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   attempt, err := uow.ShippingAttemptRepository().Get(ctx, id)
	//   // ... mutate and update
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		AttemptRepoFactory
		BatchRepoFactory
		CODRepoFactory
		ReturnRepoFactory
		AssignmentRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)

// Clock returns the current time in UTC.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}
