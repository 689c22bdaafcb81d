package batchrepo

import (
	"context"
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBatchRepository implements ports.BatchRepository using GORM.
type GormBatchRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackBatch(code string, aggregate any)
}

func NewGormBatchRepository(db *gorm.DB, tracker aggregateTracker) *GormBatchRepository {
	return &GormBatchRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormBatchRepository) Add(ctx context.Context, aggregate *batch.Batch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Select("*").Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackBatch(aggregate.Code(), aggregate)
	return nil
}

// Update writes the mutable columns if the stored version matches.
func (r *GormBatchRepository) Update(ctx context.Context, aggregate *batch.Batch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	expected := dto.Version
	dto.Version = expected + 1

	result := r.db.WithContext(ctx).
		Model(&BatchDTO{}).
		Where("code = ? AND version = ?", dto.Code, expected).
		Select("*").
		Omit("code", "staff_id", "customer_id", "members", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("batch", aggregate.Code())
	}

	aggregate.SetVersion(dto.Version)
	r.tracker.TrackBatch(aggregate.Code(), aggregate)
	return nil
}

func (r *GormBatchRepository) Get(ctx context.Context, code string) (*batch.Batch, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, errs.NewValueIsRequiredError("batch code")
	}

	var dto BatchDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("batch", code)
		}
		return nil, err
	}

	return toDomain(dto)
}
