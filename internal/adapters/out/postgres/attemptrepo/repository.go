package attemptrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/adapters/out/postgres/pgutil"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAttemptRepository implements ports.ShippingAttemptRepository using GORM.
type GormAttemptRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormAttemptRepository(db *gorm.DB, tracker aggregateTracker) *GormAttemptRepository {
	return &GormAttemptRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new attempt. The partial unique index on active attempts turns
// a concurrent second open for the same order into ErrAttemptAlreadyActive.
func (r *GormAttemptRepository) Add(ctx context.Context, aggregate *shipment.Attempt) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Select("*").Create(&dto).Error; err != nil {
		if pgutil.IsUniqueViolation(err) {
			return fmt.Errorf("%w: order %s", shipment.ErrAttemptAlreadyActive, aggregate.OrderID())
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every column if the stored version matches.
func (r *GormAttemptRepository) Update(ctx context.Context, aggregate *shipment.Attempt) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	expected := dto.Version
	dto.Version = expected + 1

	result := r.db.WithContext(ctx).
		Model(&AttemptDTO{}).
		Where("id = ? AND version = ?", dto.ID, expected).
		Select("*").
		Omit("id", "order_id", "customer_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("shipping attempt", aggregate.ID())
	}

	aggregate.SetVersion(dto.Version)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormAttemptRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Attempt, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AttemptDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipping attempt", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormAttemptRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*shipment.Attempt, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AttemptDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func (r *GormAttemptRepository) ListByBatch(ctx context.Context, batchCode string) ([]*shipment.Attempt, error) {
	var dtos []AttemptDTO
	if err := r.db.WithContext(ctx).Where("batch_code = ?", batchCode).Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func (r *GormAttemptRepository) ListByCustomer(ctx context.Context, customerID kernel.UUID) ([]*shipment.Attempt, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AttemptDTO
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND status NOT IN ?", customerID.Bytes(), TerminalStatuses()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func (r *GormAttemptRepository) ListStalePending(ctx context.Context, olderThan time.Time, limit int) ([]*shipment.Attempt, error) {
	var dtos []AttemptDTO
	if err := r.db.WithContext(ctx).
		Where("status = ? AND assignee IS NULL AND created_at < ?", int(shipment.Pending), olderThan).
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func (r *GormAttemptRepository) CountActiveByStaff(ctx context.Context) (map[kernel.UUID]int, error) {
	var rows []struct {
		Assignee uuid.UUID
		Active   int
	}
	if err := r.db.WithContext(ctx).
		Model(&AttemptDTO{}).
		Select("assignee, COUNT(*) AS active").
		Where("assignee IS NOT NULL AND status NOT IN ?", TerminalStatuses()).
		Group("assignee").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	load := make(map[kernel.UUID]int, len(rows))
	for _, row := range rows {
		id, err := kernel.UUIDFromBytes(row.Assignee[:])
		if err != nil {
			return nil, err
		}
		load[id] = row.Active
	}
	return load, nil
}
