package assignmentrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAssignmentRepository implements ports.AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db *gorm.DB
}

func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// TryInsert relies on INSERT ... ON CONFLICT DO NOTHING: of several concurrent
// inserts for one subject exactly one affects a row.
func (r *GormAssignmentRepository) TryInsert(ctx context.Context, h assignment.Holding) (bool, error) {
	if err := errors.Join(h.Subject.Validate(), h.StaffID.Validate()); err != nil {
		return false, err
	}

	dto := fromDomain(h)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *GormAssignmentRepository) Get(ctx context.Context, subject assignment.Subject) (assignment.Holding, error) {
	if err := subject.Validate(); err != nil {
		return assignment.Holding{}, err
	}

	var dto HoldingDTO
	err := r.db.WithContext(ctx).
		First(&dto, "subject_kind = ? AND subject_id = ?", string(subject.Kind), subject.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return assignment.Holding{}, errs.NewObjectNotFoundError("assignment", subject.String())
		}
		return assignment.Holding{}, err
	}

	return toDomain(dto)
}

func (r *GormAssignmentRepository) Delete(ctx context.Context, subject assignment.Subject) error {
	if err := subject.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Where("subject_kind = ? AND subject_id = ?", string(subject.Kind), subject.ID).
		Delete(&HoldingDTO{}).Error
}
