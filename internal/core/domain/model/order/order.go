package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrReasonIsRequired is returned when an upstream rejection or cancellation has no reason.
	ErrReasonIsRequired = errs.NewValueIsRequiredError("rejection or cancellation reason")
)

// Order is one customer purchase as seen by fulfillment.
//
// Order follows these invariants:
//   - It has at least one line item and its total is the sum of their subtotals
//   - It is registered in a pre-shipping status, or Rejected/Cancelled with a reason
//   - After registration its status changes only through SyncStatus, which the
//     OrderLedger calls with the value derived from the shipping attempts
//   - It is never deleted
type Order struct {
	id             kernel.UUID
	customerID     kernel.UUID
	contactPhone   string
	items          []LineItem
	total          kernel.Money
	status         Status
	upstreamReason string
	processedBy    *kernel.UUID
	returnedAt     *time.Time
	createdAt      time.Time
	updatedAt      time.Time
	version        int64

	isConstructed bool
}

// NewOrder registers an order handed over by the checkout collaborator.
//
// Parameters:
//   - id, customerID: valid identifiers
//   - contactPhone: optional phone used for delivery notifications
//   - items: at least one valid line item
//   - status: a pre-shipping status, or Rejected/Cancelled together with reason
//   - processedBy: optional staff member who confirmed the order
//
// Example:
//
//	items := []order.LineItem{{ProductID: "serum-30ml", Quantity: 2, UnitPrice: kernel.MustMoney(120000)}}
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, "+84901234567", items, order.Confirmed, "", nil, time.Now())
func NewOrder(
	id, customerID kernel.UUID,
	contactPhone string,
	items []LineItem,
	status Status,
	reason string,
	processedBy *kernel.UUID,
	now time.Time,
) (*Order, error) {
	o := &Order{
		contactPhone:  strings.TrimSpace(contactPhone),
		processedBy:   processedBy,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setItems(items),
		o.setInitialStatus(status, reason),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from storage, bypassing the registration
// status rule but not the structural checks.
func RestoreOrder(
	id, customerID kernel.UUID,
	contactPhone string,
	items []LineItem,
	status Status,
	reason string,
	processedBy *kernel.UUID,
	returnedAt *time.Time,
	createdAt, updatedAt time.Time,
	version int64,
) (*Order, error) {
	o, err := NewOrder(id, customerID, contactPhone, items, Processing, "", processedBy, createdAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	o.status = status
	o.upstreamReason = reason
	o.returnedAt = returnedAt
	o.updatedAt = updatedAt
	o.version = version
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID              { return o.id }
func (o *Order) CustomerID() kernel.UUID      { return o.customerID }
func (o *Order) ContactPhone() string         { return o.contactPhone }
func (o *Order) Items() []LineItem            { return append([]LineItem(nil), o.items...) }
func (o *Order) Total() kernel.Money          { return o.total }
func (o *Order) Status() Status               { return o.status }
func (o *Order) UpstreamReason() string       { return o.upstreamReason }
func (o *Order) ProcessedBy() *kernel.UUID    { return o.processedBy }
func (o *Order) ReturnedAt() *time.Time       { return o.returnedAt }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }
func (o *Order) UpdatedAt() time.Time         { return o.updatedAt }
func (o *Order) Version() int64               { return o.version }
func (o *Order) SetVersion(version int64)     { o.version = version }
func (o *Order) IsOwnedBy(c kernel.UUID) bool { return o.customerID.IsEqual(c) }

// HasUpstreamDecision reports whether checkout rejected or cancelled the order.
func (o *Order) HasUpstreamDecision() bool {
	return o.upstreamReason != "" && o.status.IsUpstreamDecision()
}

// IsReturned reports whether a return request for the order was completed.
func (o *Order) IsReturned() bool {
	return o.returnedAt != nil
}

// SyncStatus stores the status derived by the ledger. It reports whether the
// status changed.
func (o *Order) SyncStatus(status Status, now time.Time) (bool, error) {
	if err := status.Validate(); err != nil {
		return false, err
	}
	if o.status == status {
		return false, nil
	}
	o.status = status
	o.updatedAt = now
	return true, nil
}

// MarkReturned records that the goods came back to the warehouse. The ledger
// then derives Returned for an order whose last attempt was delivered.
func (o *Order) MarkReturned(at time.Time) {
	if o.returnedAt == nil {
		returnedAt := at
		o.returnedAt = &returnedAt
		o.updatedAt = at
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return fmt.Errorf("customer: %w", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("line items")
	}
	total := kernel.Zero
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		subtotal, err := item.Subtotal()
		if err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		if total, err = total.Add(subtotal); err != nil {
			return err
		}
	}
	o.items = append([]LineItem(nil), items...)
	o.total = total
	return nil
}

func (o *Order) setInitialStatus(status Status, reason string) error {
	reason = strings.TrimSpace(reason)
	switch {
	case status.IsPreShipping():
	case status.IsUpstreamDecision():
		if reason == "" {
			return ErrReasonIsRequired
		}
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to register an order", status),
		)
	}
	o.status = status
	o.upstreamReason = reason
	return nil
}
