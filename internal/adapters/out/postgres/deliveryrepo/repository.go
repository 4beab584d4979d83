package deliveryrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery to the database.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
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

// Update saves an existing delivery to the database.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a delivery by ID.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetLatestByOrder retrieves the most recently created delivery for an order.
func (r *GormDeliveryRepository) GetLatestByOrder(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInStatus retrieves a page of deliveries in the given status, newest first.
func (r *GormDeliveryRepository) GetAllInStatus(
	ctx context.Context,
	status delivery.Status,
	limit, offset int,
) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", int(status)).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	result := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		del, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, del)
	}

	return result, nil
}

// CountInStatus returns the total number of deliveries in the given status.
func (r *GormDeliveryRepository) CountInStatus(ctx context.Context, status delivery.Status) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("status = ?", int(status)).
		Count(&count).Error
	return count, err
}

// GormQuoteRepository implements QuoteRepository using GORM.
type GormQuoteRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormQuoteRepository creates a new GORM quote repository.
func NewGormQuoteRepository(db *gorm.DB, tracker aggregateTracker) *GormQuoteRepository {
	return &GormQuoteRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new quote to the database.
func (r *GormQuoteRepository) Add(ctx context.Context, quote *delivery.Quote) error {
	if err := quote.Validate(); err != nil {
		return err
	}

	dto := quoteFromDomain(quote)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(quote.ID(), quote)
	return nil
}

// Update saves an existing quote to the database.
func (r *GormQuoteRepository) Update(ctx context.Context, quote *delivery.Quote) error {
	if err := quote.Validate(); err != nil {
		return err
	}

	dto := quoteFromDomain(quote)
	result := r.db.WithContext(ctx).Model(&QuoteDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(quote.ID(), quote)
	return nil
}

// Get retrieves a quote by ID.
func (r *GormQuoteRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Quote, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto QuoteDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("quote", id.String())
		}
		return nil, err
	}

	return quoteToDomain(dto)
}

// GetAllActive retrieves a page of quotes still in Active status, newest first.
func (r *GormQuoteRepository) GetAllActive(ctx context.Context, limit, offset int) ([]*delivery.Quote, error) {
	var dtos []QuoteDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", int(delivery.QuoteActive)).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return quotesToDomain(dtos)
}

// CountActive returns the total number of Active quotes.
func (r *GormQuoteRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&QuoteDTO{}).
		Where("status = ?", int(delivery.QuoteActive)).
		Count(&count).Error
	return count, err
}

// GetAllActiveExpiredBefore retrieves Active quotes whose expiry already passed.
func (r *GormQuoteRepository) GetAllActiveExpiredBefore(ctx context.Context, moment time.Time) ([]*delivery.Quote, error) {
	var dtos []QuoteDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at < ?", int(delivery.QuoteActive), moment).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return quotesToDomain(dtos)
}

func quotesToDomain(dtos []QuoteDTO) ([]*delivery.Quote, error) {
	result := make([]*delivery.Quote, 0, len(dtos))
	for _, dto := range dtos {
		quote, err := quoteToDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, quote)
	}
	return result, nil
}

// GormJobRecordRepository implements JobRecordRepository using GORM.
type GormJobRecordRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormJobRecordRepository creates a new GORM job record repository.
func NewGormJobRecordRepository(db *gorm.DB, tracker aggregateTracker) *GormJobRecordRepository {
	return &GormJobRecordRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a courier job record to the database. Records are never updated.
func (r *GormJobRecordRepository) Add(ctx context.Context, record *delivery.JobRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := jobRecordFromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}
