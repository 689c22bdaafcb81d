package batch

import (
	"fmt"

	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"
)

// Status is the aggregate state of a batch.
//
//	Assigned ──pickup──> OutForDelivery ──members terminal──> Resolved ──complete──> Completed
type Status int

const (
	Unknown Status = iota
	// Assigned: at least one member has not left the depot yet.
	Assigned
	// OutForDelivery: the least advanced member is out for delivery.
	OutForDelivery
	// Resolved: every member is terminal; the batch is archived and may be completed.
	Resolved
	// Completed: the courier closed the run with photos and the COD total.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Assigned:       "ASSIGNED",
		OutForDelivery: "OUT_FOR_DELIVERY",
		Resolved:       "RESOLVED",
		Completed:      "COMPLETED",
	}
}

func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid batch status", s))
}

func (s Status) Validate() error {
	if s <= Unknown || s > Completed {
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

// DeriveStatus returns the status of a batch whose members are in the given
// states: the least advanced member wins.
func DeriveStatus(members []shipment.Status) Status {
	if len(members) == 0 {
		return Assigned
	}
	least := members[0]
	for _, m := range members[1:] {
		if m.Rank() < least.Rank() {
			least = m
		}
	}
	switch {
	case least.IsTerminal():
		return Resolved
	case least == shipment.OutForDelivery:
		return OutForDelivery
	default:
		return Assigned
	}
}
