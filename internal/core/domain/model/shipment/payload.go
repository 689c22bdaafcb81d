package shipment

import (
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
)

// Payload carries the outcome details of a terminal transition.
type Payload struct {
	Note            string
	UnexpectedCase  string
	CODCollected    bool
	CollectedAmount kernel.Money
	ProofPictures   []string
}

// IsEmpty reports whether nothing beyond the target status was supplied.
func (p Payload) IsEmpty() bool {
	return strings.TrimSpace(p.Note) == "" &&
		strings.TrimSpace(p.UnexpectedCase) == "" &&
		!p.CODCollected &&
		p.CollectedAmount.IsZero() &&
		len(p.ProofPictures) == 0
}
