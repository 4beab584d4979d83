// Package storerepo provides data transfer objects and mapping functions for
// store and product mapping persistence. Stores carry the platform credentials
// and sync bookkeeping; mappings link source products to their destination
// counterparts.
package storerepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/store"

	"github.com/google/uuid"
)

// StoreDTO represents the database structure for persisting store aggregates.
type StoreDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string
	PlatformDomain    string `gorm:"uniqueIndex"`
	PlatformToken     string
	DestinationURL    string `gorm:"column:destination_url"`
	DestinationToken  string
	AutoSync          bool `gorm:"index"`
	SyncStatus        int
	LastSyncedAt      *time.Time
	LastSyncError     string
	LastSyncSucceeded int
	LastSyncFailed    int
}

// TableName specifies the database table name for store entities.
func (StoreDTO) TableName() string {
	return "stores"
}

// MappingDTO represents the database structure for product mappings.
// The (store, source product) pair is unique.
type MappingDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	StoreID              uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_store_source"`
	SourceProductID      string    `gorm:"uniqueIndex:idx_store_source"`
	DestinationProductID string
	SyncedAt             time.Time
}

// TableName specifies the database table name for mapping entities.
func (MappingDTO) TableName() string {
	return "mappings"
}

func fromDomain(st *store.Store) StoreDTO {
	return StoreDTO{
		ID:                st.ID().Bytes(),
		Name:              st.Name(),
		PlatformDomain:    st.PlatformDomain(),
		PlatformToken:     st.PlatformToken(),
		DestinationURL:    st.DestinationURL(),
		DestinationToken:  st.DestinationToken(),
		AutoSync:          st.AutoSync(),
		SyncStatus:        int(st.SyncStatus()),
		LastSyncedAt:      st.LastSyncedAt(),
		LastSyncError:     st.LastSyncError(),
		LastSyncSucceeded: st.LastSyncSucceeded(),
		LastSyncFailed:    st.LastSyncFailed(),
	}
}

func toDomain(dto StoreDTO) (*store.Store, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return store.RestoreStore(
		id,
		dto.Name,
		dto.PlatformDomain,
		dto.PlatformToken,
		dto.DestinationURL,
		dto.DestinationToken,
		dto.AutoSync,
		store.SyncStatus(dto.SyncStatus),
		dto.LastSyncedAt,
		dto.LastSyncError,
		dto.LastSyncSucceeded,
		dto.LastSyncFailed,
	)
}

func mappingFromDomain(mapping *product.Mapping) MappingDTO {
	return MappingDTO{
		ID:                   mapping.ID().Bytes(),
		StoreID:              mapping.StoreID().Bytes(),
		SourceProductID:      mapping.SourceProductID(),
		DestinationProductID: mapping.DestinationProductID(),
		SyncedAt:             mapping.SyncedAt(),
	}
}

func mappingToDomain(dto MappingDTO) (*product.Mapping, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	return product.RestoreMapping(
		id,
		storeID,
		dto.SourceProductID,
		dto.DestinationProductID,
		dto.SyncedAt,
	), nil
}
