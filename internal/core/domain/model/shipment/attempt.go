package shipment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/cod"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrAttemptIsNotConstructed is returned when an Attempt was not created via NewAttempt or RestoreAttempt.
	ErrAttemptIsNotConstructed = errors.New("Attempt must be created via NewAttempt constructor")

	// ErrInvalidTransition is returned when the requested status is not reachable from the current one.
	ErrInvalidTransition = errs.NewStateConflictError("InvalidTransition", "shipping attempt transition is not allowed")

	// ErrPayloadNotAccepted is returned when outcome details accompany a non-outcome transition.
	ErrPayloadNotAccepted = errs.NewValidationError("PayloadNotAccepted",
		"note, unexpected case, COD and proof pictures are accepted only for DELIVERED, FAILED or RETURNED")

	// ErrUnexpectedCaseRequired is returned when FAILED or RETURNED has no explanation.
	ErrUnexpectedCaseRequired = errs.NewValidationError("UnexpectedCaseRequired", "unexpected case is required for FAILED and RETURNED")

	// ErrAttemptAlreadyActive is returned when opening an attempt while another one is still in flight.
	ErrAttemptAlreadyActive = errs.NewStateConflictError("AttemptAlreadyActive", "order already has a non-terminal shipping attempt")

	// ErrAlreadyDelivered is returned when opening an attempt for a delivered order.
	ErrAlreadyDelivered = errs.NewStateConflictError("AlreadyDelivered", "order is already delivered")
)

// Attempt is one courier delivery try for one order and the unit of courier
// work. It is created unassigned, claimed by exactly one staff member, moved
// only along the transition table, and frozen once terminal.
//
// Invariants:
//   - assignee is set from Assigned onwards
//   - collected amount equals the declared total whenever COD was collected
//   - FAILED and RETURNED carry an unexpected case
//   - no mutation is accepted once the status is terminal
type Attempt struct {
	id         kernel.UUID
	orderID    kernel.UUID
	customerID kernel.UUID
	assignee   *kernel.UUID
	status     Status

	declaredTotal    kernel.Money
	codCollected     bool
	collectedAmount  kernel.Money
	codCollectedAt   *time.Time
	codTransferredAt *time.Time

	note           string
	unexpectedCase string
	proofPictures  []string
	batchCode      string

	estimatedDelivery *time.Time
	deliveredAt       *time.Time
	createdAt         time.Time
	updatedAt         time.Time
	version           int64

	isConstructed bool
}

// NewAttempt opens an unassigned PENDING attempt for an order.
//
// Example:
//
//	attempt, err := shipment.NewAttempt(kernel.NewUUID(), orderID, customerID, order.Total(), nil, time.Now())
func NewAttempt(
	id, orderID, customerID kernel.UUID,
	declaredTotal kernel.Money,
	estimatedDelivery *time.Time,
	now time.Time,
) (*Attempt, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), customerID.Validate()); err != nil {
		return nil, err
	}

	return &Attempt{
		id:                id,
		orderID:           orderID,
		customerID:        customerID,
		status:            Pending,
		declaredTotal:     declaredTotal,
		estimatedDelivery: estimatedDelivery,
		createdAt:         now,
		updatedAt:         now,
		isConstructed:     true,
	}, nil
}

// State is the persisted form of an Attempt.
type State struct {
	ID                kernel.UUID
	OrderID           kernel.UUID
	CustomerID        kernel.UUID
	Assignee          *kernel.UUID
	Status            Status
	DeclaredTotal     kernel.Money
	CODCollected      bool
	CollectedAmount   kernel.Money
	CODCollectedAt    *time.Time
	CODTransferredAt  *time.Time
	Note              string
	UnexpectedCase    string
	ProofPictures     []string
	BatchCode         string
	EstimatedDelivery *time.Time
	DeliveredAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Version           int64
}

// RestoreAttempt rebuilds an Attempt from storage.
func RestoreAttempt(s State) (*Attempt, error) {
	a, err := NewAttempt(s.ID, s.OrderID, s.CustomerID, s.DeclaredTotal, s.EstimatedDelivery, s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err = s.Status.Validate(); err != nil {
		return nil, err
	}
	if s.Status != Pending && s.Status != Cancelled && s.Assignee == nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("assignee",
			fmt.Errorf("%s attempt %s has no assignee", s.Status, s.ID))
	}

	a.assignee = s.Assignee
	a.status = s.Status
	a.codCollected = s.CODCollected
	a.collectedAmount = s.CollectedAmount
	a.codCollectedAt = s.CODCollectedAt
	a.codTransferredAt = s.CODTransferredAt
	a.note = s.Note
	a.unexpectedCase = s.UnexpectedCase
	a.proofPictures = s.ProofPictures
	a.batchCode = s.BatchCode
	a.deliveredAt = s.DeliveredAt
	a.updatedAt = s.UpdatedAt
	a.version = s.Version
	return a, nil
}

func (a *Attempt) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAttemptIsNotConstructed
	}
	return nil
}

func (a *Attempt) ID() kernel.UUID                 { return a.id }
func (a *Attempt) OrderID() kernel.UUID            { return a.orderID }
func (a *Attempt) CustomerID() kernel.UUID         { return a.customerID }
func (a *Attempt) Assignee() *kernel.UUID          { return a.assignee }
func (a *Attempt) Status() Status                  { return a.status }
func (a *Attempt) DeclaredTotal() kernel.Money     { return a.declaredTotal }
func (a *Attempt) CODCollected() bool              { return a.codCollected }
func (a *Attempt) CollectedAmount() kernel.Money   { return a.collectedAmount }
func (a *Attempt) CODCollectedAt() *time.Time      { return a.codCollectedAt }
func (a *Attempt) CODTransferredAt() *time.Time    { return a.codTransferredAt }
func (a *Attempt) Note() string                    { return a.note }
func (a *Attempt) UnexpectedCase() string          { return a.unexpectedCase }
func (a *Attempt) ProofPictures() []string         { return append([]string(nil), a.proofPictures...) }
func (a *Attempt) BatchCode() string               { return a.batchCode }
func (a *Attempt) EstimatedDelivery() *time.Time   { return a.estimatedDelivery }
func (a *Attempt) DeliveredAt() *time.Time         { return a.deliveredAt }
func (a *Attempt) CreatedAt() time.Time            { return a.createdAt }
func (a *Attempt) UpdatedAt() time.Time            { return a.updatedAt }
func (a *Attempt) Version() int64                  { return a.version }
func (a *Attempt) InBatch() bool                   { return a.batchCode != "" }
func (a *Attempt) IsAssignedTo(s kernel.UUID) bool { return kernel.SameHolder(a.assignee, s) }

// Snapshot returns the persisted form of the attempt.
func (a *Attempt) Snapshot() State {
	return State{
		ID:                a.id,
		OrderID:           a.orderID,
		CustomerID:        a.customerID,
		Assignee:          a.assignee,
		Status:            a.status,
		DeclaredTotal:     a.declaredTotal,
		CODCollected:      a.codCollected,
		CollectedAmount:   a.collectedAmount,
		CODCollectedAt:    a.codCollectedAt,
		CODTransferredAt:  a.codTransferredAt,
		Note:              a.note,
		UnexpectedCase:    a.unexpectedCase,
		ProofPictures:     a.ProofPictures(),
		BatchCode:         a.batchCode,
		EstimatedDelivery: a.estimatedDelivery,
		DeliveredAt:       a.deliveredAt,
		CreatedAt:         a.createdAt,
		UpdatedAt:         a.updatedAt,
		Version:           a.version,
	}
}

// SetVersion is called by the repository after a successful write.
func (a *Attempt) SetVersion(version int64) {
	a.version = version
}

// Claim assigns a PENDING attempt to staffID. Claiming again by the current
// holder is a no-op.
//
// Returns assignment.ErrAlreadyAssigned when another staff member holds the
// attempt and ErrInvalidTransition for any other non-PENDING status.
func (a *Attempt) Claim(staffID kernel.UUID, now time.Time) error {
	if err := staffID.Validate(); err != nil {
		return err
	}

	switch {
	case a.status == Pending && a.assignee == nil:
	case a.status == Pending && a.IsAssignedTo(staffID):
	case a.status == Assigned && a.IsAssignedTo(staffID):
		return nil
	case a.assignee != nil && !a.IsAssignedTo(staffID):
		return fmt.Errorf("%w: attempt %s", assignment.ErrAlreadyAssigned, a.id)
	default:
		return fmt.Errorf("%w: cannot claim attempt in %s", ErrInvalidTransition, a.status)
	}

	a.assignee = &staffID
	a.status = Assigned
	a.updatedAt = now
	return nil
}

// Transition moves the attempt to target on behalf of staffID.
//
// The table is checked first, so an unreachable target is always
// ErrInvalidTransition regardless of the caller. Then:
//   - staffID must be the assignee (assignment.ErrNotAssignee)
//   - payload is accepted only for DELIVERED, FAILED, RETURNED (ErrPayloadNotAccepted)
//   - FAILED and RETURNED need an unexpected case (ErrUnexpectedCaseRequired)
//   - DELIVERED with COD collected needs collected == declared (cod.ErrCODMismatch)
//
// On any error the attempt is left unchanged.
func (a *Attempt) Transition(target Status, staffID kernel.UUID, payload Payload, now time.Time) error {
	if !a.status.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.status, target)
	}
	if !a.IsAssignedTo(staffID) {
		return fmt.Errorf("%w: attempt %s", assignment.ErrNotAssignee, a.id)
	}
	if !target.AcceptsPayload() && !payload.IsEmpty() {
		return fmt.Errorf("%w: target %s", ErrPayloadNotAccepted, target)
	}

	switch target {
	case Delivered:
		if err := a.checkCOD(payload); err != nil {
			return err
		}
		a.codCollected = payload.CODCollected
		if payload.CODCollected {
			a.collectedAmount = payload.CollectedAmount
			collectedAt := now
			a.codCollectedAt = &collectedAt
		}
		deliveredAt := now
		a.deliveredAt = &deliveredAt
	case Failed, Returned:
		if strings.TrimSpace(payload.UnexpectedCase) == "" {
			return ErrUnexpectedCaseRequired
		}
		if payload.CODCollected || !payload.CollectedAmount.IsZero() {
			return fmt.Errorf("%w: COD cannot be collected on %s", ErrPayloadNotAccepted, target)
		}
	default:
	}

	if target.AcceptsPayload() {
		a.note = strings.TrimSpace(payload.Note)
		a.unexpectedCase = strings.TrimSpace(payload.UnexpectedCase)
		a.proofPictures = append([]string(nil), payload.ProofPictures...)
	}
	a.status = target
	a.updatedAt = now
	return nil
}

func (a *Attempt) checkCOD(payload Payload) error {
	if !payload.CODCollected {
		if !payload.CollectedAmount.IsZero() {
			return fmt.Errorf("%w: amount given without COD collected flag", cod.ErrCODMismatch)
		}
		return nil
	}
	if !payload.CollectedAmount.IsEqual(a.declaredTotal) {
		return fmt.Errorf("%w: declared %s, collected %s",
			cod.ErrCODMismatch, a.declaredTotal, payload.CollectedAmount)
	}
	return nil
}

// Cancel is the system or admin cancellation of an attempt nobody has
// picked up yet. It is allowed from PENDING and ASSIGNED only.
func (a *Attempt) Cancel(reason string, now time.Time) error {
	if a.status != Pending && a.status != Assigned {
		return fmt.Errorf("%w: cannot cancel attempt in %s", ErrInvalidTransition, a.status)
	}
	if strings.TrimSpace(reason) == "" {
		return errs.NewValueIsRequiredError("cancellation reason")
	}
	a.status = Cancelled
	a.note = strings.TrimSpace(reason)
	a.updatedAt = now
	return nil
}

// CanJoinBatch reports whether the attempt may be grouped into a new batch
// owned by staffID: PENDING, in no batch, unassigned or already held by staffID.
func (a *Attempt) CanJoinBatch(staffID kernel.UUID) bool {
	return a.status == Pending &&
		!a.InBatch() &&
		(a.assignee == nil || a.IsAssignedTo(staffID))
}

// JoinBatch claims the attempt for the batch owner and stamps the batch code.
func (a *Attempt) JoinBatch(code string, staffID kernel.UUID, now time.Time) error {
	if code == "" {
		return errs.NewValueIsRequiredError("batch code")
	}
	if !a.CanJoinBatch(staffID) {
		return fmt.Errorf("%w: attempt %s (%s) cannot join batch %s", ErrInvalidTransition, a.id, a.status, code)
	}
	if err := a.Claim(staffID, now); err != nil {
		return err
	}
	a.batchCode = code
	return nil
}

// MarkCODCollected stamps a cash collection recorded after delivery.
// It is a no-op once the attempt already carries a collection.
func (a *Attempt) MarkCODCollected(amount kernel.Money, at time.Time) {
	if a.codCollected {
		return
	}
	a.codCollected = true
	a.collectedAmount = amount
	collectedAt := at
	a.codCollectedAt = &collectedAt
	a.updatedAt = at
}

// MarkCODTransferred records when the collected cash was fully handed over.
func (a *Attempt) MarkCODTransferred(at time.Time) {
	if a.codTransferredAt == nil {
		transferredAt := at
		a.codTransferredAt = &transferredAt
		a.updatedAt = at
	}
}
