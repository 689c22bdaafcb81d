package returns

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest constructor")

	// ErrNotEligible is returned when the order's latest attempt is not DELIVERED.
	ErrNotEligible = errs.NewStateConflictError("NotEligible", "order is not eligible for a return request")

	// ErrDuplicateRequest is returned when a non-terminal request already exists for the order.
	ErrDuplicateRequest = errs.NewStateConflictError("DuplicateRequest", "order already has an active return request")

	ErrInvalidTransition = errs.NewStateConflictError("InvalidTransition", "return request transition is not allowed")

	// ErrEmptyCompletionNote is returned when completing without a note.
	ErrEmptyCompletionNote = errs.NewValidationError("EmptyCompletionNote", "completion note must not be empty")

	// ErrNotOrderOwner is returned when the customer does not own the order or request.
	ErrNotOrderOwner = errs.NewForbiddenError("NotOrderOwner", "customer does not own the order")
)

// Request is one return claim against a delivered order.
type Request struct {
	id         kernel.UUID
	orderID    kernel.UUID
	attemptID  kernel.UUID
	customerID kernel.UUID
	reason     Reason
	detail     string
	evidence   []string
	status     Status

	reviewerID *kernel.UUID
	reviewNote string
	reviewedAt *time.Time

	assigneeID *kernel.UUID
	assignedAt *time.Time

	completionNote      string
	completionPhotos    []string
	warehouseReceivedAt *time.Time
	cancelledAt         *time.Time

	createdAt time.Time
	updatedAt time.Time
	version   int64

	isConstructed bool
}

// NewRequest opens a PENDING request. Eligibility against the order's attempts
// and other requests is checked by the ReturnPolicy domain service.
func NewRequest(
	id, orderID, attemptID, customerID kernel.UUID,
	reason Reason,
	detail string,
	evidence []string,
	now time.Time,
) (*Request, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		attemptID.Validate(),
		customerID.Validate(),
		reason.Validate(),
	); err != nil {
		return nil, err
	}

	return &Request{
		id:            id,
		orderID:       orderID,
		attemptID:     attemptID,
		customerID:    customerID,
		reason:        reason,
		detail:        strings.TrimSpace(detail),
		evidence:      append([]string(nil), evidence...),
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// State is the persisted form of a Request.
type State struct {
	ID                  kernel.UUID
	OrderID             kernel.UUID
	AttemptID           kernel.UUID
	CustomerID          kernel.UUID
	Reason              Reason
	Detail              string
	Evidence            []string
	Status              Status
	ReviewerID          *kernel.UUID
	ReviewNote          string
	ReviewedAt          *time.Time
	AssigneeID          *kernel.UUID
	AssignedAt          *time.Time
	CompletionNote      string
	CompletionPhotos    []string
	WarehouseReceivedAt *time.Time
	CancelledAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Version             int64
}

func RestoreRequest(s State) (*Request, error) {
	r, err := NewRequest(s.ID, s.OrderID, s.AttemptID, s.CustomerID, s.Reason, s.Detail, s.Evidence, s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err = s.Status.Validate(); err != nil {
		return nil, err
	}
	r.status = s.Status
	r.reviewerID = s.ReviewerID
	r.reviewNote = s.ReviewNote
	r.reviewedAt = s.ReviewedAt
	r.assigneeID = s.AssigneeID
	r.assignedAt = s.AssignedAt
	r.completionNote = s.CompletionNote
	r.completionPhotos = s.CompletionPhotos
	r.warehouseReceivedAt = s.WarehouseReceivedAt
	r.cancelledAt = s.CancelledAt
	r.updatedAt = s.UpdatedAt
	r.version = s.Version
	return r, nil
}

func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}
	return nil
}

func (r *Request) ID() kernel.UUID                 { return r.id }
func (r *Request) OrderID() kernel.UUID            { return r.orderID }
func (r *Request) AttemptID() kernel.UUID          { return r.attemptID }
func (r *Request) CustomerID() kernel.UUID         { return r.customerID }
func (r *Request) Reason() Reason                  { return r.reason }
func (r *Request) Detail() string                  { return r.detail }
func (r *Request) Evidence() []string              { return append([]string(nil), r.evidence...) }
func (r *Request) Status() Status                  { return r.status }
func (r *Request) ReviewerID() *kernel.UUID        { return r.reviewerID }
func (r *Request) ReviewNote() string              { return r.reviewNote }
func (r *Request) ReviewedAt() *time.Time          { return r.reviewedAt }
func (r *Request) AssigneeID() *kernel.UUID        { return r.assigneeID }
func (r *Request) AssignedAt() *time.Time          { return r.assignedAt }
func (r *Request) CompletionNote() string          { return r.completionNote }
func (r *Request) CompletionPhotos() []string      { return append([]string(nil), r.completionPhotos...) }
func (r *Request) WarehouseReceivedAt() *time.Time { return r.warehouseReceivedAt }
func (r *Request) CancelledAt() *time.Time         { return r.cancelledAt }
func (r *Request) CreatedAt() time.Time            { return r.createdAt }
func (r *Request) UpdatedAt() time.Time            { return r.updatedAt }
func (r *Request) Version() int64                  { return r.version }
func (r *Request) SetVersion(version int64)        { r.version = version }
func (r *Request) IsActive() bool                  { return !r.status.IsTerminal() }

// Snapshot returns the persisted form of the request.
func (r *Request) Snapshot() State {
	return State{
		ID:                  r.id,
		OrderID:             r.orderID,
		AttemptID:           r.attemptID,
		CustomerID:          r.customerID,
		Reason:              r.reason,
		Detail:              r.detail,
		Evidence:            r.Evidence(),
		Status:              r.status,
		ReviewerID:          r.reviewerID,
		ReviewNote:          r.reviewNote,
		ReviewedAt:          r.reviewedAt,
		AssigneeID:          r.assigneeID,
		AssignedAt:          r.assignedAt,
		CompletionNote:      r.completionNote,
		CompletionPhotos:    r.CompletionPhotos(),
		WarehouseReceivedAt: r.warehouseReceivedAt,
		CancelledAt:         r.cancelledAt,
		CreatedAt:           r.createdAt,
		UpdatedAt:           r.updatedAt,
		Version:             r.version,
	}
}

// Review approves or rejects a PENDING request.
func (r *Request) Review(decision Decision, reviewerID kernel.UUID, note string, now time.Time) error {
	if err := errors.Join(decision.Validate(), reviewerID.Validate()); err != nil {
		return err
	}
	if r.status != Pending {
		return fmt.Errorf("%w: cannot review request in %s", ErrInvalidTransition, r.status)
	}

	if decision == Approve {
		r.status = Approved
	} else {
		r.status = Rejected
	}
	r.reviewerID = &reviewerID
	r.reviewNote = strings.TrimSpace(note)
	reviewedAt := now
	r.reviewedAt = &reviewedAt
	r.updatedAt = now
	return nil
}

// Assign hands an APPROVED request to a warehouse staff member. Assigning
// again to the same staff member is a no-op.
func (r *Request) Assign(staffID kernel.UUID, now time.Time) error {
	if err := staffID.Validate(); err != nil {
		return err
	}
	if r.status == InProgress {
		if kernel.SameHolder(r.assigneeID, staffID) {
			return nil
		}
		return fmt.Errorf("%w: return request %s", assignment.ErrAlreadyAssigned, r.id)
	}
	if r.status != Approved {
		return fmt.Errorf("%w: cannot assign request in %s", ErrInvalidTransition, r.status)
	}

	r.status = InProgress
	r.assigneeID = &staffID
	assignedAt := now
	r.assignedAt = &assignedAt
	r.updatedAt = now
	return nil
}

// Complete closes an IN_PROGRESS request once the goods reached the
// warehouse. Only the assignee may complete and the note is mandatory.
func (r *Request) Complete(staffID kernel.UUID, note string, photos []string, now time.Time) error {
	if r.status != InProgress {
		return fmt.Errorf("%w: cannot complete request in %s", ErrInvalidTransition, r.status)
	}
	if !kernel.SameHolder(r.assigneeID, staffID) {
		return fmt.Errorf("%w: return request %s", assignment.ErrNotAssignee, r.id)
	}
	if strings.TrimSpace(note) == "" {
		return ErrEmptyCompletionNote
	}

	r.status = Completed
	r.completionNote = strings.TrimSpace(note)
	r.completionPhotos = append([]string(nil), photos...)
	receivedAt := now
	r.warehouseReceivedAt = &receivedAt
	r.updatedAt = now
	return nil
}

// Cancel is the customer's withdrawal from any non-terminal state.
func (r *Request) Cancel(customerID kernel.UUID, now time.Time) error {
	if !r.customerID.IsEqual(customerID) {
		return fmt.Errorf("%w: return request %s", ErrNotOrderOwner, r.id)
	}
	if r.status.IsTerminal() {
		return fmt.Errorf("%w: cannot cancel request in %s", ErrInvalidTransition, r.status)
	}

	r.status = Cancelled
	cancelledAt := now
	r.cancelledAt = &cancelledAt
	r.updatedAt = now
	return nil
}
