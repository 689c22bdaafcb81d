// Package assignment describes who currently owns a unit of courier or
// warehouse work. A Subject is held by at most one staff member at a time.
package assignment

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrAlreadyAssigned is returned when another staff member holds the subject.
	ErrAlreadyAssigned = errs.NewStateConflictError("AlreadyAssigned", "subject is already assigned to another staff member")

	// ErrNotAssignee is returned when the caller is not the current holder.
	ErrNotAssignee = errs.NewForbiddenError("NotAssignee", "caller is not the current assignee")
)

// SubjectKind names the kind of work that can be held.
type SubjectKind string

const (
	SubjectShippingAttempt SubjectKind = "SHIPPING_ATTEMPT"
	SubjectBatch           SubjectKind = "BATCH"
	SubjectReturnRequest   SubjectKind = "RETURN_REQUEST"
)

func (k SubjectKind) Validate() error {
	switch k {
	case SubjectShippingAttempt, SubjectBatch, SubjectReturnRequest:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("subject kind", fmt.Errorf("%q is not a valid subject kind", string(k)))
	}
}

// Subject identifies one holdable unit. ID is the attempt or request UUID,
// or the batch code.
type Subject struct {
	Kind SubjectKind
	ID   string
}

func AttemptSubject(id kernel.UUID) Subject {
	return Subject{Kind: SubjectShippingAttempt, ID: id.String()}
}

func BatchSubject(code string) Subject {
	return Subject{Kind: SubjectBatch, ID: code}
}

func ReturnRequestSubject(id kernel.UUID) Subject {
	return Subject{Kind: SubjectReturnRequest, ID: id.String()}
}

func (s Subject) Validate() error {
	if err := s.Kind.Validate(); err != nil {
		return err
	}
	if s.ID == "" {
		return errs.NewValueIsRequiredError("subject id")
	}
	return nil
}

func (s Subject) String() string {
	return fmt.Sprintf("%s/%s", s.Kind, s.ID)
}

// Holding is the registry entry binding a subject to its holder.
type Holding struct {
	Subject    Subject
	StaffID    kernel.UUID
	AcquiredAt time.Time
}

// HeldBy reports whether staffID is the holder.
func (h Holding) HeldBy(staffID kernel.UUID) bool {
	return h.StaffID.IsEqual(staffID)
}
