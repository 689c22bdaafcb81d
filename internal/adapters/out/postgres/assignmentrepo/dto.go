// Package assignmentrepo persists the staff assignment registry: one row per
// held subject.
package assignmentrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// HoldingDTO is the staff_assignments row. The composite primary key makes a
// subject holdable by at most one staff member.
type HoldingDTO struct {
	SubjectKind string    `gorm:"type:varchar(32);primaryKey"`
	SubjectID   string    `gorm:"type:varchar(64);primaryKey"`
	StaffID     uuid.UUID `gorm:"type:uuid;not null;index"`
	AcquiredAt  time.Time `gorm:"type:timestamptz;not null"`
}

func (HoldingDTO) TableName() string {
	return "staff_assignments"
}

func fromDomain(h assignment.Holding) HoldingDTO {
	return HoldingDTO{
		SubjectKind: string(h.Subject.Kind),
		SubjectID:   h.Subject.ID,
		StaffID:     h.StaffID.Bytes(),
		AcquiredAt:  h.AcquiredAt,
	}
}

func toDomain(dto HoldingDTO) (assignment.Holding, error) {
	staffID, err := kernel.UUIDFromBytes(dto.StaffID[:])
	if err != nil {
		return assignment.Holding{}, err
	}
	return assignment.Holding{
		Subject:    assignment.Subject{Kind: assignment.SubjectKind(dto.SubjectKind), ID: dto.SubjectID},
		StaffID:    staffID,
		AcquiredAt: dto.AcquiredAt,
	}, nil
}
