package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetSyncStatusQueryIsNotConstructed = errors.New(
		"GetSyncStatusQuery must be created via NewGetSyncStatusQuery constructor",
	)
)

// GetSyncStatusQuery retrieves a store's current catalog sync state.
type GetSyncStatusQuery struct {
	guard   guard.ConstructorGuard
	storeID kernel.UUID
}

// NewGetSyncStatusQuery creates a query for a store's sync state.
func NewGetSyncStatusQuery(storeID kernel.UUID) (GetSyncStatusQuery, error) {
	if err := storeID.Validate(); err != nil {
		return GetSyncStatusQuery{}, err
	}

	return GetSyncStatusQuery{
		guard:   guard.NewConstructorGuard(),
		storeID: storeID,
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSyncStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetSyncStatusQueryIsNotConstructed)
}

// StoreID returns the identifier of the requested store.
func (q GetSyncStatusQuery) StoreID() kernel.UUID { return q.storeID }

// SyncStatusDetail is the read model of a store's sync state and counters.
type SyncStatusDetail struct {
	StoreID       kernel.UUID
	StoreName     string
	Status        string
	LastSyncedAt  *time.Time
	LastSyncError string
	Succeeded     int
	Failed        int
}
