// Package batchrepo persists delivery batches keyed by their code.
package batchrepo

import (
	"time"

	"fulfillment/internal/adapters/out/postgres/pgutil"
	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// BatchDTO is the batches row. Members keep their creation order.
type BatchDTO struct {
	Code             string         `gorm:"type:varchar(32);primaryKey"`
	StaffID          uuid.UUID      `gorm:"type:uuid;not null;index"`
	CustomerID       uuid.UUID      `gorm:"type:uuid;not null;index"`
	Members          pq.StringArray `gorm:"type:text[];not null"`
	Status           int            `gorm:"not null;index"`
	Note             string         `gorm:"type:text"`
	CompletionPhotos pq.StringArray `gorm:"type:text[]"`
	CompletionNote   string         `gorm:"type:text"`
	CODCollected     bool           `gorm:"column:cod_collected;not null;default:false"`
	TotalCODAmount   int64          `gorm:"column:total_cod_amount;not null;default:0"`
	CreatedAt        time.Time      `gorm:"type:timestamptz;not null"`
	PickedUpAt       *time.Time     `gorm:"type:timestamptz"`
	CompletedAt      *time.Time     `gorm:"type:timestamptz"`
	UpdatedAt        time.Time      `gorm:"type:timestamptz;not null"`
	Version          int64          `gorm:"not null;default:0"`
}

func (BatchDTO) TableName() string {
	return "batches"
}

func fromDomain(b *batch.Batch) BatchDTO {
	s := b.Snapshot()
	return BatchDTO{
		Code:             s.Code,
		StaffID:          s.StaffID.Bytes(),
		CustomerID:       s.CustomerID.Bytes(),
		Members:          pgutil.UUIDArray(s.Members),
		Status:           int(s.Status),
		Note:             s.Note,
		CompletionPhotos: pgutil.StringArray(s.CompletionPhotos),
		CompletionNote:   s.CompletionNote,
		CODCollected:     s.CODCollected,
		TotalCODAmount:   s.TotalCODAmount.Amount(),
		CreatedAt:        s.CreatedAt,
		PickedUpAt:       s.PickedUpAt,
		CompletedAt:      s.CompletedAt,
		UpdatedAt:        s.UpdatedAt,
		Version:          s.Version,
	}
}

func toDomain(dto BatchDTO) (*batch.Batch, error) {
	staffID, err := kernel.UUIDFromBytes(dto.StaffID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	members, err := pgutil.UUIDsFromArray(dto.Members)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.TotalCODAmount)
	if err != nil {
		return nil, err
	}

	return batch.RestoreBatch(batch.State{
		Code:             dto.Code,
		StaffID:          staffID,
		CustomerID:       customerID,
		Members:          members,
		Status:           batch.Status(dto.Status),
		Note:             dto.Note,
		CompletionPhotos: []string(dto.CompletionPhotos),
		CompletionNote:   dto.CompletionNote,
		CODCollected:     dto.CODCollected,
		TotalCODAmount:   total,
		CreatedAt:        dto.CreatedAt,
		PickedUpAt:       dto.PickedUpAt,
		CompletedAt:      dto.CompletedAt,
		UpdatedAt:        dto.UpdatedAt,
		Version:          dto.Version,
	})
}
