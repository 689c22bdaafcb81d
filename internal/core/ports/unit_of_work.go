// Package ports defines the contracts between the fulfillment core and its
// infrastructure: repositories, the unit of work and outbound collaborators.
package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Repositories obtained after Begin share its transaction.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	ShippingAttemptRepository() ShippingAttemptRepository
	BatchRepository() BatchRepository
	CODRecordRepository() CODRecordRepository
	ReturnRequestRepository() ReturnRequestRepository
	AssignmentRepository() AssignmentRepository
}
