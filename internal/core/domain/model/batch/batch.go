package batch

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/cod"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBatchIsNotConstructed = errors.New("Batch must be created via NewBatch constructor")

	// ErrIneligibleMember is returned by createBatch when any referenced order
	// has no eligible attempt. No member is claimed in that case.
	ErrIneligibleMember = errs.NewStateConflictError("IneligibleMember", "order has no eligible shipping attempt for a batch")

	// ErrPartialPickupRejected is returned when any member cannot leave for delivery.
	ErrPartialPickupRejected = errs.NewStateConflictError("PartialPickupRejected", "every member must be ASSIGNED to pick up the batch")

	// ErrBatchNotReady is returned when completing a batch with non-terminal members.
	ErrBatchNotReady = errs.NewStateConflictError("BatchNotReady", "batch still has members in flight")

	ErrBatchAlreadyCompleted = errs.NewStateConflictError("BatchAlreadyCompleted", "batch is already completed")

	ErrCompletionPhotoRequired = errs.NewValidationError("CompletionPhotoRequired", "at least one completion photo is required")
)

// NewCode returns a fresh code of the form BATCH-YYYYMMDD-XXXXXX.
func NewCode(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("BATCH-%s-%s", now.UTC().Format("20060102"), suffix)
}

// Completion is what the courier submits when closing a run.
type Completion struct {
	Photos         []string
	Note           string
	CODCollected   bool
	TotalCODAmount kernel.Money
}

// Batch is a named group of shipping attempts assigned to one staff member.
//
// Invariants:
//   - every member shares the owning staff member and the customer
//   - members are unique and their order is kept
//   - Completed is reached only when every member is terminal
type Batch struct {
	code       string
	staffID    kernel.UUID
	customerID kernel.UUID
	members    []kernel.UUID
	status     Status
	note       string

	completionPhotos []string
	completionNote   string
	codCollected     bool
	totalCODAmount   kernel.Money

	createdAt   time.Time
	pickedUpAt  *time.Time
	completedAt *time.Time
	updatedAt   time.Time
	version     int64

	isConstructed bool
}

// NewBatch creates an ASSIGNED batch over the given attempt ids.
func NewBatch(code string, staffID, customerID kernel.UUID, members []kernel.UUID, note string, now time.Time) (*Batch, error) {
	b := &Batch{
		code:          strings.TrimSpace(code),
		staffID:       staffID,
		customerID:    customerID,
		status:        Assigned,
		note:          strings.TrimSpace(note),
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(b.validateCode(), staffID.Validate(), customerID.Validate(), b.setMembers(members)); err != nil {
		return nil, err
	}
	return b, nil
}

// State is the persisted form of a Batch.
type State struct {
	Code             string
	StaffID          kernel.UUID
	CustomerID       kernel.UUID
	Members          []kernel.UUID
	Status           Status
	Note             string
	CompletionPhotos []string
	CompletionNote   string
	CODCollected     bool
	TotalCODAmount   kernel.Money
	CreatedAt        time.Time
	PickedUpAt       *time.Time
	CompletedAt      *time.Time
	UpdatedAt        time.Time
	Version          int64
}

func RestoreBatch(s State) (*Batch, error) {
	b, err := NewBatch(s.Code, s.StaffID, s.CustomerID, s.Members, s.Note, s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err = s.Status.Validate(); err != nil {
		return nil, err
	}
	b.status = s.Status
	b.completionPhotos = s.CompletionPhotos
	b.completionNote = s.CompletionNote
	b.codCollected = s.CODCollected
	b.totalCODAmount = s.TotalCODAmount
	b.pickedUpAt = s.PickedUpAt
	b.completedAt = s.CompletedAt
	b.updatedAt = s.UpdatedAt
	b.version = s.Version
	return b, nil
}

func (b *Batch) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBatchIsNotConstructed
	}
	return nil
}

func (b *Batch) Code() string                 { return b.code }
func (b *Batch) StaffID() kernel.UUID         { return b.staffID }
func (b *Batch) CustomerID() kernel.UUID      { return b.customerID }
func (b *Batch) Members() []kernel.UUID       { return append([]kernel.UUID(nil), b.members...) }
func (b *Batch) Status() Status               { return b.status }
func (b *Batch) Note() string                 { return b.note }
func (b *Batch) CompletionPhotos() []string   { return append([]string(nil), b.completionPhotos...) }
func (b *Batch) CompletionNote() string       { return b.completionNote }
func (b *Batch) CODCollected() bool           { return b.codCollected }
func (b *Batch) TotalCODAmount() kernel.Money { return b.totalCODAmount }
func (b *Batch) CreatedAt() time.Time         { return b.createdAt }
func (b *Batch) PickedUpAt() *time.Time       { return b.pickedUpAt }
func (b *Batch) CompletedAt() *time.Time      { return b.completedAt }
func (b *Batch) UpdatedAt() time.Time         { return b.updatedAt }
func (b *Batch) Version() int64               { return b.version }
func (b *Batch) SetVersion(version int64)     { b.version = version }
func (b *Batch) IsOwnedBy(s kernel.UUID) bool { return b.staffID.IsEqual(s) }

// Snapshot returns the persisted form of the batch.
func (b *Batch) Snapshot() State {
	return State{
		Code:             b.code,
		StaffID:          b.staffID,
		CustomerID:       b.customerID,
		Members:          b.Members(),
		Status:           b.status,
		Note:             b.note,
		CompletionPhotos: b.CompletionPhotos(),
		CompletionNote:   b.completionNote,
		CODCollected:     b.codCollected,
		TotalCODAmount:   b.totalCODAmount,
		CreatedAt:        b.createdAt,
		PickedUpAt:       b.pickedUpAt,
		CompletedAt:      b.completedAt,
		UpdatedAt:        b.updatedAt,
		Version:          b.version,
	}
}

// CheckOwner returns assignment.ErrNotAssignee unless staffID owns the batch.
func (b *Batch) CheckOwner(staffID kernel.UUID) error {
	if !b.IsOwnedBy(staffID) {
		return fmt.Errorf("%w: batch %s", assignment.ErrNotAssignee, b.code)
	}
	return nil
}

// Contains reports whether attemptID is a member.
func (b *Batch) Contains(attemptID kernel.UUID) bool {
	for _, m := range b.members {
		if m.IsEqual(attemptID) {
			return true
		}
	}
	return false
}

// Refresh recomputes the status from the current member statuses. A completed
// batch keeps its status. It reports whether the status changed.
func (b *Batch) Refresh(members []shipment.Status, now time.Time) bool {
	if b.status == Completed {
		return false
	}
	derived := DeriveStatus(members)
	if derived == b.status {
		return false
	}
	if derived == OutForDelivery && b.pickedUpAt == nil {
		pickedUpAt := now
		b.pickedUpAt = &pickedUpAt
	}
	b.status = derived
	b.updatedAt = now
	return true
}

// Complete closes the run. deliveredCOD is the sum of the collected amounts
// reported by the DELIVERED members. The declared total must match it
// exactly, so a run whose members collected cash cannot close without COD.
func (b *Batch) Complete(staffID kernel.UUID, members []shipment.Status, c Completion, deliveredCOD kernel.Money, now time.Time) error {
	if err := b.CheckOwner(staffID); err != nil {
		return err
	}
	if b.status == Completed {
		return fmt.Errorf("%w: %s", ErrBatchAlreadyCompleted, b.code)
	}
	for _, m := range members {
		if !m.IsTerminal() {
			return fmt.Errorf("%w: a member is still %s", ErrBatchNotReady, m)
		}
	}
	if len(members) != len(b.members) {
		return fmt.Errorf("%w: %d of %d members loaded", ErrBatchNotReady, len(members), len(b.members))
	}
	if len(c.Photos) == 0 {
		return ErrCompletionPhotoRequired
	}
	if c.CODCollected && !c.TotalCODAmount.IsEqual(deliveredCOD) {
		return fmt.Errorf("%w: declared %s, delivered members collected %s",
			cod.ErrCODMismatch, c.TotalCODAmount, deliveredCOD)
	}
	if !c.CODCollected && !c.TotalCODAmount.IsZero() {
		return fmt.Errorf("%w: amount given without COD collected flag", cod.ErrCODMismatch)
	}
	if !c.CODCollected && !deliveredCOD.IsZero() {
		return fmt.Errorf("%w: delivered members collected %s but no COD was declared", cod.ErrCODMismatch, deliveredCOD)
	}

	b.status = Completed
	b.completionPhotos = append([]string(nil), c.Photos...)
	b.completionNote = strings.TrimSpace(c.Note)
	b.codCollected = c.CODCollected
	b.totalCODAmount = c.TotalCODAmount
	completedAt := now
	b.completedAt = &completedAt
	b.updatedAt = now
	return nil
}

func (b *Batch) validateCode() error {
	if b.code == "" {
		return errs.NewValueIsRequiredError("batch code")
	}
	return nil
}

func (b *Batch) setMembers(members []kernel.UUID) error {
	if len(members) == 0 {
		return errs.NewValueIsRequiredError("batch members")
	}
	seen := make(map[kernel.UUID]struct{}, len(members))
	for _, m := range members {
		if err := m.Validate(); err != nil {
			return err
		}
		if _, dup := seen[m]; dup {
			return errs.NewValueIsInvalidErrorWithCause("batch members", fmt.Errorf("attempt %s listed twice", m))
		}
		seen[m] = struct{}{}
	}
	b.members = append([]kernel.UUID(nil), members...)
	return nil
}
