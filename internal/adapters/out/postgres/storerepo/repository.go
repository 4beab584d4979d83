package storerepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormStoreRepository implements StoreRepository using GORM.
type GormStoreRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormStoreRepository creates a new GORM store repository.
func NewGormStoreRepository(db *gorm.DB, tracker aggregateTracker) *GormStoreRepository {
	return &GormStoreRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new store to the database.
func (r *GormStoreRepository) Add(ctx context.Context, aggregate *store.Store) error {
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

// Update saves an existing store to the database. Uses a column map so sync
// bookkeeping can drop back to zero values.
func (r *GormStoreRepository) Update(ctx context.Context, aggregate *store.Store) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&StoreDTO{}).Where("id = ?", dto.ID).
		Updates(map[string]any{
			"name":                dto.Name,
			"platform_domain":     dto.PlatformDomain,
			"platform_token":      dto.PlatformToken,
			"destination_url":     dto.DestinationURL,
			"destination_token":   dto.DestinationToken,
			"auto_sync":           dto.AutoSync,
			"sync_status":         dto.SyncStatus,
			"last_synced_at":      dto.LastSyncedAt,
			"last_sync_error":     dto.LastSyncError,
			"last_sync_succeeded": dto.LastSyncSucceeded,
			"last_sync_failed":    dto.LastSyncFailed,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a store by ID.
func (r *GormStoreRepository) Get(ctx context.Context, id kernel.UUID) (*store.Store, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StoreDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("store", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllAutoSync retrieves stores with automatic catalog sync enabled.
func (r *GormStoreRepository) GetAllAutoSync(ctx context.Context) ([]*store.Store, error) {
	var dtos []StoreDTO
	err := r.db.WithContext(ctx).
		Where("auto_sync = ?", true).
		Order("name").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	result := make([]*store.Store, 0, len(dtos))
	for _, dto := range dtos {
		st, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, st)
	}

	return result, nil
}

// GormMappingRepository implements MappingRepository using GORM.
type GormMappingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormMappingRepository creates a new GORM mapping repository.
func NewGormMappingRepository(db *gorm.DB, tracker aggregateTracker) *GormMappingRepository {
	return &GormMappingRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new mapping to the database.
func (r *GormMappingRepository) Add(ctx context.Context, mapping *product.Mapping) error {
	if err := mapping.Validate(); err != nil {
		return err
	}

	dto := mappingFromDomain(mapping)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(mapping.ID(), mapping)
	return nil
}

// Update saves an existing mapping to the database.
func (r *GormMappingRepository) Update(ctx context.Context, mapping *product.Mapping) error {
	if err := mapping.Validate(); err != nil {
		return err
	}

	dto := mappingFromDomain(mapping)
	result := r.db.WithContext(ctx).Model(&MappingDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(mapping.ID(), mapping)
	return nil
}

// GetByStoreAndSource retrieves the mapping for a source product within a store.
func (r *GormMappingRepository) GetByStoreAndSource(
	ctx context.Context,
	storeID kernel.UUID,
	sourceProductID string,
) (*product.Mapping, error) {
	if err := storeID.Validate(); err != nil {
		return nil, err
	}

	var dto MappingDTO
	err := r.db.WithContext(ctx).
		First(&dto, "store_id = ? AND source_product_id = ?", storeID.Bytes(), sourceProductID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("mapping", sourceProductID)
		}
		return nil, err
	}

	return mappingToDomain(dto)
}

// CountByStore returns the number of mapped products for a store.
func (r *GormMappingRepository) CountByStore(ctx context.Context, storeID kernel.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&MappingDTO{}).
		Where("store_id = ?", storeID.Bytes()).
		Count(&count).Error
	return count, err
}
