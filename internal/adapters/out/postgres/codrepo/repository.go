package codrepo

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/adapters/out/postgres/pgutil"
	"fulfillment/internal/core/domain/model/cod"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRecordRepository implements ports.CODRecordRepository using GORM.
type GormRecordRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormRecordRepository(db *gorm.DB, tracker aggregateTracker) *GormRecordRepository {
	return &GormRecordRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the record and any transfers it already carries.
func (r *GormRecordRepository) Add(ctx context.Context, record *cod.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgutil.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", cod.ErrCollectionAlreadyRecorded, record.Ref())
		}
		return err
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}

// Update writes the collection columns if the stored version matches and
// appends transfers that are not stored yet.
func (r *GormRecordRepository) Update(ctx context.Context, record *cod.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	db := r.db.WithContext(ctx)

	result := db.Model(&RecordDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"collected":    dto.Collected,
			"collected_at": dto.CollectedAt,
			"version":      dto.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("cod record", record.Ref().String())
	}

	if len(dto.Transfers) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.Transfers).Error; err != nil {
			return err
		}
	}

	record.SetVersion(dto.Version + 1)
	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}

func (r *GormRecordRepository) Find(ctx context.Context, ref cod.Reference) (*cod.Record, error) {
	return r.find(ctx, r.db.WithContext(ctx), ref)
}

// FindForUpdate locks the record row until the surrounding transaction ends,
// serializing concurrent transfers against one reference.
func (r *GormRecordRepository) FindForUpdate(ctx context.Context, ref cod.Reference) (*cod.Record, error) {
	return r.find(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), ref)
}

func (r *GormRecordRepository) find(ctx context.Context, db *gorm.DB, ref cod.Reference) (*cod.Record, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	var dto RecordDTO
	if err := db.First(&dto, "ref_kind = ? AND ref_id = ?", string(ref.Kind), ref.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cod record", ref.String())
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Where("record_id = ?", dto.ID).
		Order("transferred_at, id").
		Find(&dto.Transfers).Error; err != nil {
		return nil, err
	}

	return toDomain(dto)
}
