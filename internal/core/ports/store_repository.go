package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/store"
)

// StoreRepository defines the persistence contract for store aggregates.
type StoreRepository interface {
	Add(ctx context.Context, aggregate *store.Store) error

	Update(ctx context.Context, aggregate *store.Store) error

	Get(ctx context.Context, id kernel.UUID) (*store.Store, error)

	// GetAllAutoSync retrieves stores with automatic catalog sync enabled.
	// Used by the scheduled sync job.
	GetAllAutoSync(ctx context.Context) ([]*store.Store, error)
}

// MappingRepository defines the persistence contract for product mappings.
// At most one mapping exists per (store, source product) pair.
type MappingRepository interface {
	Add(ctx context.Context, mapping *product.Mapping) error

	Update(ctx context.Context, mapping *product.Mapping) error

	// GetByStoreAndSource retrieves the mapping for a source product within a
	// store. Returns ObjectNotFoundError when no mapping exists yet.
	GetByStoreAndSource(ctx context.Context, storeID kernel.UUID, sourceProductID string) (*product.Mapping, error)

	// CountByStore returns the number of mapped products for a store.
	CountByStore(ctx context.Context, storeID kernel.UUID) (int64, error)
}
