package returns

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the state of a return request.
type Status int

const (
	Unknown Status = iota
	Pending
	Approved
	Rejected
	InProgress
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Pending:    "PENDING",
		Approved:   "APPROVED",
		Rejected:   "REJECTED",
		InProgress: "IN_PROGRESS",
		Completed:  "COMPLETED",
		Cancelled:  "CANCELLED",
	}
}

func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid return status", s))
}

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

// IsTerminal reports whether the request is closed.
func (s Status) IsTerminal() bool {
	return s == Rejected || s == Completed || s == Cancelled
}

// Reason is why the customer sends the goods back.
type Reason string

const (
	ReasonDamaged        Reason = "DAMAGED"
	ReasonWrongItem      Reason = "WRONG_ITEM"
	ReasonDefective      Reason = "DEFECTIVE"
	ReasonNotAsDescribed Reason = "NOT_AS_DESCRIBED"
	ReasonChangeMind     Reason = "CHANGE_MIND"
	ReasonOther          Reason = "OTHER"
)

func (r Reason) Validate() error {
	switch r {
	case ReasonDamaged, ReasonWrongItem, ReasonDefective, ReasonNotAsDescribed, ReasonChangeMind, ReasonOther:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("reason is invalid", fmt.Errorf("%q is not a valid return reason", string(r)))
	}
}

// Decision is the reviewer's verdict on a pending request.
type Decision string

const (
	Approve Decision = "APPROVE"
	Reject  Decision = "REJECT"
)

func (d Decision) Validate() error {
	if d != Approve && d != Reject {
		return errs.NewValueIsInvalidErrorWithCause("decision is invalid", fmt.Errorf("%q is not APPROVE or REJECT", string(d)))
	}
	return nil
}
