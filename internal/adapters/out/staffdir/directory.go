// Package staffdir provides the staff members eligible for automatic
// assignment from configuration.
package staffdir

import (
	"context"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

var _ ports.StaffDirectory = Static{}

// Static is a fixed, ordered list of staff IDs.
type Static struct {
	staff []kernel.UUID
}

func NewStatic(staff []kernel.UUID) Static {
	return Static{staff: append([]kernel.UUID(nil), staff...)}
}

// Parse reads a comma separated list of staff UUIDs. Blank entries and
// duplicates are dropped.
func Parse(list string) (Static, error) {
	seen := make(map[kernel.UUID]struct{})
	var staff []kernel.UUID
	for _, raw := range strings.Split(list, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return Static{}, errs.NewValueIsInvalidErrorWithCause("staff directory", fmt.Errorf("%q: %w", raw, err))
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		staff = append(staff, id)
	}
	return Static{staff: staff}, nil
}

func (s Static) ActiveStaff(context.Context) ([]kernel.UUID, error) {
	return append([]kernel.UUID(nil), s.staff...), nil
}
