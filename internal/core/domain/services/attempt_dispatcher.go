package services

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
)

// ErrNoStaffAvailable is returned when the staff directory is empty.
var ErrNoStaffAvailable = errors.New("no staff available")

// AttemptDispatcher picks a staff member for an attempt nobody claimed in time.
//
// Business rules:
//   - only PENDING, unassigned attempts are dispatched
//   - the staff member holding the fewest active attempts wins
//   - ties go to the staff member listed first
//
// The load map is updated in place so that consecutive calls within one run
// spread the work.
type AttemptDispatcher struct{}

func NewAttemptDispatcher() AttemptDispatcher {
	return AttemptDispatcher{}
}

// Dispatch claims attempt for the least loaded member of staff and returns who got it.
func (AttemptDispatcher) Dispatch(
	attempt *shipment.Attempt,
	staff []kernel.UUID,
	load map[kernel.UUID]int,
	now time.Time,
) (kernel.UUID, error) {
	if err := attempt.Validate(); err != nil {
		return kernel.UUID{}, err
	}
	if len(staff) == 0 {
		return kernel.UUID{}, ErrNoStaffAvailable
	}

	best := staff[0]
	for _, candidate := range staff[1:] {
		if load[candidate] < load[best] {
			best = candidate
		}
	}

	if err := attempt.Claim(best, now); err != nil {
		return kernel.UUID{}, err
	}
	load[best]++
	return best, nil
}
