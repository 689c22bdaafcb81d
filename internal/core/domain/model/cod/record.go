package cod

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")

	// ErrCODMismatch is returned when a collected amount differs from what was declared.
	ErrCODMismatch = errs.NewConsistencyError("CODMismatch", "collected amount does not match the declared amount")

	// ErrOverTransfer is returned when a transfer would exceed the collected amount.
	ErrOverTransfer = errs.NewConsistencyError("OverTransfer", "transferred amount would exceed collected amount")

	// ErrCollectionAlreadyRecorded is returned on a second collection for one reference.
	ErrCollectionAlreadyRecorded = errs.NewConsistencyError("CollectionAlreadyRecorded", "collection is already recorded and immutable")
)

// RefKind tells whether a record belongs to an attempt or a batch.
type RefKind string

const (
	RefAttempt RefKind = "ATTEMPT"
	RefBatch   RefKind = "BATCH"
)

// ParseRefKind accepts the wire names "attempt" and "batch" in any case.
func ParseRefKind(s string) (RefKind, error) {
	switch s {
	case "attempt", "ATTEMPT", "attempts":
		return RefAttempt, nil
	case "batch", "BATCH", "batches":
		return RefBatch, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("reference kind", fmt.Errorf("%q is not attempt or batch", s))
	}
}

// Reference points at the attempt (UUID) or batch (code) a record reconciles.
type Reference struct {
	Kind RefKind
	ID   string
}

func AttemptRef(id kernel.UUID) Reference {
	return Reference{Kind: RefAttempt, ID: id.String()}
}

func BatchRef(code string) Reference {
	return Reference{Kind: RefBatch, ID: code}
}

func (r Reference) Validate() error {
	if r.Kind != RefAttempt && r.Kind != RefBatch {
		return errs.NewValueIsInvalidErrorWithCause("reference kind", fmt.Errorf("%q is not attempt or batch", string(r.Kind)))
	}
	if r.ID == "" {
		return errs.NewValueIsRequiredError("reference id")
	}
	if r.Kind == RefAttempt {
		if _, err := kernel.UUIDFromString(r.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r Reference) String() string {
	return fmt.Sprintf("%s:%s", r.Kind, r.ID)
}

// Transfer is one hand-over of collected cash to the business.
type Transfer struct {
	ID            kernel.UUID
	Amount        kernel.Money
	TransferredAt time.Time
}

// Record is the aggregate reconciling one reference.
type Record struct {
	id          kernel.UUID
	ref         Reference
	collected   kernel.Money
	collectedAt *time.Time
	transferred kernel.Money
	transfers   []Transfer
	version     int64

	isConstructed bool
}

// NewRecord opens an empty record for ref.
func NewRecord(id kernel.UUID, ref Reference) (*Record, error) {
	if err := errors.Join(id.Validate(), ref.Validate()); err != nil {
		return nil, err
	}
	return &Record{id: id, ref: ref, isConstructed: true}, nil
}

// RestoreRecord rebuilds a persisted record. The transferred total is
// recomputed from the transfers.
func RestoreRecord(
	id kernel.UUID,
	ref Reference,
	collected kernel.Money,
	collectedAt *time.Time,
	transfers []Transfer,
	version int64,
) (*Record, error) {
	r, err := NewRecord(id, ref)
	if err != nil {
		return nil, err
	}
	r.collected = collected
	r.collectedAt = collectedAt
	r.version = version
	for _, t := range transfers {
		if r.transferred, err = r.transferred.Add(t.Amount); err != nil {
			return nil, err
		}
	}
	r.transfers = append(r.transfers, transfers...)
	if r.transferred.GreaterThan(r.collected) {
		return nil, fmt.Errorf("%w: record %s", ErrOverTransfer, ref)
	}
	return r, nil
}

func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

func (r *Record) ID() kernel.UUID           { return r.id }
func (r *Record) Ref() Reference            { return r.ref }
func (r *Record) Collected() kernel.Money   { return r.collected }
func (r *Record) CollectedAt() *time.Time   { return r.collectedAt }
func (r *Record) Transferred() kernel.Money { return r.transferred }
func (r *Record) Version() int64            { return r.version }
func (r *Record) SetVersion(version int64)  { r.version = version }
func (r *Record) IsCollected() bool         { return r.collectedAt != nil }
func (r *Record) Transfers() []Transfer     { return append([]Transfer(nil), r.transfers...) }

// Outstanding is the collected cash not yet handed over.
func (r *Record) Outstanding() kernel.Money {
	out, err := r.collected.Sub(r.transferred)
	if err != nil {
		return kernel.Zero
	}
	return out
}

// IsSettled reports whether every collected unit has been transferred.
func (r *Record) IsSettled() bool {
	return r.IsCollected() && r.transferred.IsEqual(r.collected)
}

// RecordCollection stores the amount taken from the customer. It can be
// called once per record.
func (r *Record) RecordCollection(amount kernel.Money, at time.Time) error {
	if r.IsCollected() {
		return fmt.Errorf("%w: %s", ErrCollectionAlreadyRecorded, r.ref)
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("collected at")
	}
	r.collected = amount
	collectedAt := at
	r.collectedAt = &collectedAt
	return nil
}

// RecordTransfer appends a transfer, rejecting it with ErrOverTransfer when the
// cumulative transferred amount would exceed the collected amount.
func (r *Record) RecordTransfer(id kernel.UUID, amount kernel.Money, at time.Time) (Transfer, error) {
	if err := id.Validate(); err != nil {
		return Transfer{}, err
	}
	if amount.IsZero() {
		return Transfer{}, errs.NewValueIsInvalidErrorWithCause("amount", errors.New("transfer amount must be positive"))
	}
	if at.IsZero() {
		return Transfer{}, errs.NewValueIsRequiredError("transferred at")
	}

	total, err := r.transferred.Add(amount)
	if err != nil {
		return Transfer{}, err
	}
	if total.GreaterThan(r.collected) {
		return Transfer{}, fmt.Errorf("%w: %s has %s outstanding, %s requested",
			ErrOverTransfer, r.ref, r.Outstanding(), amount)
	}

	t := Transfer{ID: id, Amount: amount, TransferredAt: at}
	r.transferred = total
	r.transfers = append(r.transfers, t)
	return t, nil
}
