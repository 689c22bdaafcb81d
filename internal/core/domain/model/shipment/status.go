package shipment

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the state of one shipping attempt.
//
// State transitions:
//
//	Pending ──claim──> Assigned ──> PickedUp ──> InTransit ──> OutForDelivery ──> Delivered
//	   │                  │            │             │               │
//	   └─(system)─> Cancelled <────────┼─────────────┼───────────────┤
//	                                   └──> Failed / Returned <──────┘
//
// Delivered, Failed, Returned and Cancelled are terminal.
type Status int

const (
	// Unknown represents an uninitialized status.
	Unknown Status = iota
	Pending
	Assigned
	PickedUp
	InTransit
	OutForDelivery
	Delivered
	Failed
	Returned
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Pending:        "PENDING",
		Assigned:       "ASSIGNED",
		PickedUp:       "PICKED_UP",
		InTransit:      "IN_TRANSIT",
		OutForDelivery: "OUT_FOR_DELIVERY",
		Delivered:      "DELIVERED",
		Failed:         "FAILED",
		Returned:       "RETURNED",
		Cancelled:      "CANCELLED",
	}
}

// getTransitions lists the targets reachable through Transition. Pending to
// Assigned is reserved for Claim and Pending to Cancelled for the system Cancel.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal statuses have no outgoing transitions
	return map[Status][]Status{
		Assigned:       {PickedUp, Cancelled},
		PickedUp:       {InTransit, Failed, Returned},
		InTransit:      {OutForDelivery, Failed, Returned},
		OutForDelivery: {Delivered, Failed, Returned, Cancelled},
	}
}

// ParseStatus maps the persisted/wire name back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid shipping status", s))
}

// Validate rejects Unknown and out of range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
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

// IsTerminal reports whether no further transition is defined.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Failed || s == Returned || s == Cancelled
}

// CanTransitionTo reports whether target is reachable through Transition.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// AcceptsPayload reports whether outcome details may accompany a move to s.
func (s Status) AcceptsPayload() bool {
	return s == Delivered || s == Failed || s == Returned
}

// Rank orders statuses by delivery progress; terminal statuses share the top rank.
func (s Status) Rank() int {
	if s.IsTerminal() {
		return int(Delivered)
	}
	return int(s)
}
