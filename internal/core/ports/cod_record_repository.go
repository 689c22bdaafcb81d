package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/cod"
)

// CODRecordRepository defines the persistence contract for COD records.
type CODRecordRepository interface {
	// Add persists a new record with its collection. A second record for the
	// same reference violates a unique constraint and fails with
	// cod.ErrCollectionAlreadyRecorded.
	Add(ctx context.Context, record *cod.Record) error

	// Update writes the record and appends its new transfers, guarded by version.
	Update(ctx context.Context, record *cod.Record) error

	// Find returns the record for ref or errs.ErrObjectNotFound.
	Find(ctx context.Context, ref cod.Reference) (*cod.Record, error)

	// FindForUpdate is Find with a row lock held until the transaction ends.
	FindForUpdate(ctx context.Context, ref cod.Reference) (*cod.Record, error)
}
