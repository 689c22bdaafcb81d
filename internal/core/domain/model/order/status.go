package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the coarse, externally visible state of an order.
//
// The checkout collaborator registers an order in one of the pre-shipping
// statuses (Pending, Confirmed, Processing) or already Rejected/Cancelled.
// From then on the status is derived from the order's shipping attempts:
//
//	Processing ──attempt opened──> Shipping ──delivered──> Delivered ──return completed──> Returned
//	     ^                            │
//	     └──── failed / returned ─────┘
type Status int

const (
	// Unknown represents an uninitialized status.
	Unknown Status = iota
	Pending
	Confirmed
	Processing
	Shipping
	Delivered
	Returned
	Cancelled
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Pending:    "PENDING",
		Confirmed:  "CONFIRMED",
		Processing: "PROCESSING",
		Shipping:   "SHIPPING",
		Delivered:  "DELIVERED",
		Returned:   "RETURNED",
		Cancelled:  "CANCELLED",
		Rejected:   "REJECTED",
	}
}

// ParseStatus maps the persisted/wire name back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid order status", s))
}

// Validate rejects Unknown and out of range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Rejected {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsPreShipping reports whether the status is one the checkout collaborator
// may register an order in, before any shipping attempt exists.
func (s Status) IsPreShipping() bool {
	return s == Pending || s == Confirmed || s == Processing
}

// IsUpstreamDecision reports whether the status records a rejection or
// cancellation made outside of fulfillment.
func (s Status) IsUpstreamDecision() bool {
	return s == Cancelled || s == Rejected
}
