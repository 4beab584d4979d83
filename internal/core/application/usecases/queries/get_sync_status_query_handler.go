package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetSyncStatusQueryHandler retrieves a store's sync state from the database.
type GetSyncStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetSyncStatusQueryHandler creates a handler for sync status lookups.
func NewGetSyncStatusQueryHandler(db *gorm.DB) GetSyncStatusQueryHandler {
	return GetSyncStatusQueryHandler{db: db}
}

// Handle executes the query. Returns ObjectNotFound when no store with the
// given id exists.
func (h GetSyncStatusQueryHandler) Handle(
	ctx context.Context,
	query GetSyncStatusQuery,
) (SyncStatusDetail, error) {
	if err := query.Validate(); err != nil {
		return SyncStatusDetail{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			sync_status,
			last_synced_at,
			last_sync_error,
			last_sync_succeeded,
			last_sync_failed
		FROM stores
		WHERE id = ?
	`, query.StoreID().Bytes()).Row()

	var detail SyncStatusDetail
	var id uuid.UUID
	var syncStatus int
	var lastSyncedAt sql.NullTime
	var lastSyncError sql.NullString

	err := row.Scan(
		&id,
		&detail.StoreName,
		&syncStatus,
		&lastSyncedAt,
		&lastSyncError,
		&detail.Succeeded,
		&detail.Failed,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SyncStatusDetail{}, errs.NewObjectNotFoundError("store", query.StoreID().String())
		}
		return SyncStatusDetail{}, err
	}

	if detail.StoreID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return SyncStatusDetail{}, err
	}
	detail.Status = store.SyncStatus(syncStatus).String()
	detail.LastSyncError = lastSyncError.String

	if lastSyncedAt.Valid {
		detail.LastSyncedAt = &lastSyncedAt.Time
	}

	return detail, nil
}
