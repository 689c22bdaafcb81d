// Package returnrepo persists return requests.
package returnrepo

import (
	"time"

	"fulfillment/internal/adapters/out/postgres/pgutil"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// RequestDTO is the return_requests row.
type RequestDTO struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OrderID             uuid.UUID      `gorm:"type:uuid;not null;index"`
	AttemptID           uuid.UUID      `gorm:"type:uuid;not null"`
	CustomerID          uuid.UUID      `gorm:"type:uuid;not null;index"`
	Reason              string         `gorm:"type:varchar(32);not null"`
	Detail              string         `gorm:"type:text"`
	Evidence            pq.StringArray `gorm:"type:text[]"`
	Status              int            `gorm:"not null;index"`
	ReviewerID          *uuid.UUID     `gorm:"type:uuid"`
	ReviewNote          string         `gorm:"type:text"`
	ReviewedAt          *time.Time     `gorm:"type:timestamptz"`
	AssigneeID          *uuid.UUID     `gorm:"type:uuid;index"`
	AssignedAt          *time.Time     `gorm:"type:timestamptz"`
	CompletionNote      string         `gorm:"type:text"`
	CompletionPhotos    pq.StringArray `gorm:"type:text[]"`
	WarehouseReceivedAt *time.Time     `gorm:"type:timestamptz"`
	CancelledAt         *time.Time     `gorm:"type:timestamptz"`
	CreatedAt           time.Time      `gorm:"type:timestamptz;not null"`
	UpdatedAt           time.Time      `gorm:"type:timestamptz;not null"`
	Version             int64          `gorm:"not null;default:0"`
}

func (RequestDTO) TableName() string {
	return "return_requests"
}

// ActiveStatuses are the stored status values that block a second request.
func ActiveStatuses() []int {
	return []int{int(returns.Pending), int(returns.Approved), int(returns.InProgress)}
}

func fromDomain(r *returns.Request) RequestDTO {
	s := r.Snapshot()
	return RequestDTO{
		ID:                  s.ID.Bytes(),
		OrderID:             s.OrderID.Bytes(),
		AttemptID:           s.AttemptID.Bytes(),
		CustomerID:          s.CustomerID.Bytes(),
		Reason:              string(s.Reason),
		Detail:              s.Detail,
		Evidence:            pgutil.StringArray(s.Evidence),
		Status:              int(s.Status),
		ReviewerID:          pgutil.NullableUUID(s.ReviewerID),
		ReviewNote:          s.ReviewNote,
		ReviewedAt:          s.ReviewedAt,
		AssigneeID:          pgutil.NullableUUID(s.AssigneeID),
		AssignedAt:          s.AssignedAt,
		CompletionNote:      s.CompletionNote,
		CompletionPhotos:    pgutil.StringArray(s.CompletionPhotos),
		WarehouseReceivedAt: s.WarehouseReceivedAt,
		CancelledAt:         s.CancelledAt,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
		Version:             s.Version,
	}
}

func toDomain(dto RequestDTO) (*returns.Request, error) {
	ids := make([]kernel.UUID, 0, 4)
	for _, raw := range []uuid.UUID{dto.ID, dto.OrderID, dto.AttemptID, dto.CustomerID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	reviewerID, err := kernel.UUIDFromOptional(dto.ReviewerID)
	if err != nil {
		return nil, err
	}
	assigneeID, err := kernel.UUIDFromOptional(dto.AssigneeID)
	if err != nil {
		return nil, err
	}

	return returns.RestoreRequest(returns.State{
		ID:                  ids[0],
		OrderID:             ids[1],
		AttemptID:           ids[2],
		CustomerID:          ids[3],
		Reason:              returns.Reason(dto.Reason),
		Detail:              dto.Detail,
		Evidence:            []string(dto.Evidence),
		Status:              returns.Status(dto.Status),
		ReviewerID:          reviewerID,
		ReviewNote:          dto.ReviewNote,
		ReviewedAt:          dto.ReviewedAt,
		AssigneeID:          assigneeID,
		AssignedAt:          dto.AssignedAt,
		CompletionNote:      dto.CompletionNote,
		CompletionPhotos:    []string(dto.CompletionPhotos),
		WarehouseReceivedAt: dto.WarehouseReceivedAt,
		CancelledAt:         dto.CancelledAt,
		CreatedAt:           dto.CreatedAt,
		UpdatedAt:           dto.UpdatedAt,
		Version:             dto.Version,
	})
}
