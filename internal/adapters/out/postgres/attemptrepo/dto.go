// Package attemptrepo persists shipping attempts.
package attemptrepo

import (
	"time"

	"fulfillment/internal/adapters/out/postgres/pgutil"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// AttemptDTO is the shipping_attempts row.
type AttemptDTO struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OrderID           uuid.UUID      `gorm:"type:uuid;not null;index"`
	CustomerID        uuid.UUID      `gorm:"type:uuid;not null;index"`
	Assignee          *uuid.UUID     `gorm:"type:uuid;index"`
	Status            int            `gorm:"not null;index"`
	DeclaredTotal     int64          `gorm:"not null"`
	CODCollected      bool           `gorm:"column:cod_collected;not null;default:false"`
	CollectedAmount   int64          `gorm:"not null;default:0"`
	CODCollectedAt    *time.Time     `gorm:"column:cod_collected_at;type:timestamptz"`
	CODTransferredAt  *time.Time     `gorm:"column:cod_transferred_at;type:timestamptz"`
	Note              string         `gorm:"type:text"`
	UnexpectedCase    string         `gorm:"type:text"`
	ProofPictures     pq.StringArray `gorm:"type:text[]"`
	BatchCode         *string        `gorm:"type:varchar(32);index"`
	EstimatedDelivery *time.Time     `gorm:"type:timestamptz"`
	DeliveredAt       *time.Time     `gorm:"type:timestamptz"`
	CreatedAt         time.Time      `gorm:"type:timestamptz;not null;index"`
	UpdatedAt         time.Time      `gorm:"type:timestamptz;not null"`
	Version           int64          `gorm:"not null;default:0"`
}

func (AttemptDTO) TableName() string {
	return "shipping_attempts"
}

// TerminalStatuses are the stored status values no transition leaves.
func TerminalStatuses() []int {
	return []int{int(shipment.Delivered), int(shipment.Failed), int(shipment.Returned), int(shipment.Cancelled)}
}

func fromDomain(a *shipment.Attempt) AttemptDTO {
	s := a.Snapshot()

	var batchCode *string
	if s.BatchCode != "" {
		code := s.BatchCode
		batchCode = &code
	}

	return AttemptDTO{
		ID:                s.ID.Bytes(),
		OrderID:           s.OrderID.Bytes(),
		CustomerID:        s.CustomerID.Bytes(),
		Assignee:          pgutil.NullableUUID(s.Assignee),
		Status:            int(s.Status),
		DeclaredTotal:     s.DeclaredTotal.Amount(),
		CODCollected:      s.CODCollected,
		CollectedAmount:   s.CollectedAmount.Amount(),
		CODCollectedAt:    s.CODCollectedAt,
		CODTransferredAt:  s.CODTransferredAt,
		Note:              s.Note,
		UnexpectedCase:    s.UnexpectedCase,
		ProofPictures:     pgutil.StringArray(s.ProofPictures),
		BatchCode:         batchCode,
		EstimatedDelivery: s.EstimatedDelivery,
		DeliveredAt:       s.DeliveredAt,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
		Version:           s.Version,
	}
}

func toDomain(dto AttemptDTO) (*shipment.Attempt, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	assignee, err := kernel.UUIDFromOptional(dto.Assignee)
	if err != nil {
		return nil, err
	}
	declared, err := kernel.NewMoney(dto.DeclaredTotal)
	if err != nil {
		return nil, err
	}
	collected, err := kernel.NewMoney(dto.CollectedAmount)
	if err != nil {
		return nil, err
	}

	var batchCode string
	if dto.BatchCode != nil {
		batchCode = *dto.BatchCode
	}

	return shipment.RestoreAttempt(shipment.State{
		ID:                id,
		OrderID:           orderID,
		CustomerID:        customerID,
		Assignee:          assignee,
		Status:            shipment.Status(dto.Status),
		DeclaredTotal:     declared,
		CODCollected:      dto.CODCollected,
		CollectedAmount:   collected,
		CODCollectedAt:    dto.CODCollectedAt,
		CODTransferredAt:  dto.CODTransferredAt,
		Note:              dto.Note,
		UnexpectedCase:    dto.UnexpectedCase,
		ProofPictures:     []string(dto.ProofPictures),
		BatchCode:         batchCode,
		EstimatedDelivery: dto.EstimatedDelivery,
		DeliveredAt:       dto.DeliveredAt,
		CreatedAt:         dto.CreatedAt,
		UpdatedAt:         dto.UpdatedAt,
		Version:           dto.Version,
	})
}

func toDomainList(dtos []AttemptDTO) ([]*shipment.Attempt, error) {
	attempts := make([]*shipment.Attempt, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, nil
}
