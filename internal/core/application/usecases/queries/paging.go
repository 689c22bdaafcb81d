package queries

import "fulfillment/internal/pkg/errs"

const maxPageSize = 200

// page is the limit/offset window shared by the list queries.
type page struct {
	limit  int
	offset int
}

func newPage(limit, offset int) (page, error) {
	if limit <= 0 || limit > maxPageSize {
		return page{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxPageSize)
	}
	if offset < 0 {
		return page{}, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}
	return page{limit: limit, offset: offset}, nil
}

func (p page) Limit() int  { return p.limit }
func (p page) Offset() int { return p.offset }
