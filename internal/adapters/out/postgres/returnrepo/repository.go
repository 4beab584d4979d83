package returnrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormReturnRepository implements ReturnRepository using GORM.
type GormReturnRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormReturnRepository creates a new GORM return repository.
func NewGormReturnRepository(db *gorm.DB, tracker aggregateTracker) *GormReturnRepository {
	return &GormReturnRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new return to the database.
func (r *GormReturnRepository) Add(ctx context.Context, aggregate *returns.Return) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing return to the database.
func (r *GormReturnRepository) Update(ctx context.Context, aggregate *returns.Return) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ReturnDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a return by ID.
func (r *GormReturnRepository) Get(ctx context.Context, id kernel.UUID) (*returns.Return, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ReturnDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("return", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInStatus retrieves a page of returns in the given status, newest first.
func (r *GormReturnRepository) GetAllInStatus(
	ctx context.Context,
	status returns.Status,
	limit, offset int,
) ([]*returns.Return, error) {
	var dtos []ReturnDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", int(status)).
		Order("requested_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	result := make([]*returns.Return, 0, len(dtos))
	for _, dto := range dtos {
		ret, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, ret)
	}

	return result, nil
}

// CountInStatus returns the total number of returns in the given status.
func (r *GormReturnRepository) CountInStatus(ctx context.Context, status returns.Status) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ReturnDTO{}).
		Where("status = ?", int(status)).
		Count(&count).Error
	return count, err
}

// GormRefundRecordRepository implements RefundRecordRepository using GORM.
type GormRefundRecordRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormRefundRecordRepository creates a new GORM refund record repository.
func NewGormRefundRecordRepository(db *gorm.DB, tracker aggregateTracker) *GormRefundRecordRepository {
	return &GormRefundRecordRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a refund record to the database. Records are never updated.
func (r *GormRefundRecordRepository) Add(ctx context.Context, record *returns.RefundRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := refundRecordFromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}
