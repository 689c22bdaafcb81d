package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/assignment"
)

// AssignmentRepository stores one holding per subject.
type AssignmentRepository interface {
	// TryInsert stores h unless the subject is already held. It reports whether
	// h was stored. Concurrent inserts for one subject store exactly one holding.
	TryInsert(ctx context.Context, h assignment.Holding) (bool, error)

	// Get returns the holding of subject or errs.ErrObjectNotFound.
	Get(ctx context.Context, subject assignment.Subject) (assignment.Holding, error)

	// Delete removes the holding of subject, if any.
	Delete(ctx context.Context, subject assignment.Subject) error
}
