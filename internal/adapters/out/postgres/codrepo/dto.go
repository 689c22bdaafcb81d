// Package codrepo persists COD reconciliation records and their transfers.
package codrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/cod"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// RecordDTO is the cod_records row. (ref_kind, ref_id) is unique.
type RecordDTO struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey"`
	RefKind     string        `gorm:"type:varchar(16);not null;uniqueIndex:ux_cod_records_ref,priority:1"`
	RefID       string        `gorm:"type:varchar(64);not null;uniqueIndex:ux_cod_records_ref,priority:2"`
	Collected   int64         `gorm:"not null;default:0"`
	CollectedAt *time.Time    `gorm:"type:timestamptz"`
	Version     int64         `gorm:"not null;default:0"`
	Transfers   []TransferDTO `gorm:"foreignKey:RecordID;constraint:OnDelete:CASCADE"`
}

func (RecordDTO) TableName() string {
	return "cod_records"
}

// TransferDTO is one cod_transfers row. Transfers are append-only.
type TransferDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecordID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount        int64     `gorm:"not null"`
	TransferredAt time.Time `gorm:"type:timestamptz;not null"`
}

func (TransferDTO) TableName() string {
	return "cod_transfers"
}

func fromDomain(r *cod.Record) RecordDTO {
	id := r.ID().Bytes()
	transfers := make([]TransferDTO, 0, len(r.Transfers()))
	for _, t := range r.Transfers() {
		transfers = append(transfers, TransferDTO{
			ID:            t.ID.Bytes(),
			RecordID:      id,
			Amount:        t.Amount.Amount(),
			TransferredAt: t.TransferredAt,
		})
	}

	return RecordDTO{
		ID:          id,
		RefKind:     string(r.Ref().Kind),
		RefID:       r.Ref().ID,
		Collected:   r.Collected().Amount(),
		CollectedAt: r.CollectedAt(),
		Version:     r.Version(),
		Transfers:   transfers,
	}
}

func toDomain(dto RecordDTO) (*cod.Record, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	collected, err := kernel.NewMoney(dto.Collected)
	if err != nil {
		return nil, err
	}

	transfers := make([]cod.Transfer, 0, len(dto.Transfers))
	for _, t := range dto.Transfers {
		transferID, idErr := kernel.UUIDFromBytes(t.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		amount, amountErr := kernel.NewMoney(t.Amount)
		if amountErr != nil {
			return nil, amountErr
		}
		transfers = append(transfers, cod.Transfer{ID: transferID, Amount: amount, TransferredAt: t.TransferredAt})
	}

	ref := cod.Reference{Kind: cod.RefKind(dto.RefKind), ID: dto.RefID}
	return cod.RestoreRecord(id, ref, collected, dto.CollectedAt, transfers, dto.Version)
}
