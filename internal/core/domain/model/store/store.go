// Package store contains the Store aggregate: a merchant's connection to the
// source commerce platform and destination backend, plus its catalog sync state.
package store

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrStoreIsNotConstructed is returned when a Store instance was not created
	// through the NewStore factory method.
	ErrStoreIsNotConstructed = errors.New("Store must be created via NewStore constructor")
)

// SyncStatus represents the catalog sync state of a store.
type SyncStatus int

const (
	// SyncUnknown represents an invalid or undefined sync status.
	SyncUnknown SyncStatus = iota

	// SyncIdle means no sync has run yet or the last state was cleared.
	SyncIdle

	// SyncRunning means a sync pass is in progress.
	SyncRunning

	// SyncCompleted means the last sync pass finished (possibly with
	// per-product failures).
	SyncCompleted

	// SyncFailed means the last sync pass aborted before completion.
	SyncFailed
)

func getSyncStatusStrings() map[SyncStatus]string {
	return map[SyncStatus]string{
		SyncUnknown:   "UNKNOWN",
		SyncIdle:      "IDLE",
		SyncRunning:   "SYNCING",
		SyncCompleted: "COMPLETED",
		SyncFailed:    "FAILED",
	}
}

// Validate checks if the SyncStatus value is valid.
func (s SyncStatus) Validate() error {
	if s <= SyncUnknown || s > SyncFailed {
		return errs.NewValueIsInvalidError("sync status is invalid")
	}
	return nil
}

// String returns the wire representation of the sync status, e.g. "SYNCING".
func (s SyncStatus) String() string {
	if str, ok := getSyncStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Store represents a merchant store connected to the platform.
// It owns the credentials for both ends of the catalog sync and records the
// outcome of the most recent sync pass.
type Store struct {
	id kernel.UUID

	name string

	// platformDomain is the store's domain on the source commerce platform
	platformDomain string

	platformToken string

	destinationURL string

	destinationToken string

	// autoSync enables the scheduled catalog sync job for this store
	autoSync bool

	syncStatus SyncStatus

	lastSyncedAt *time.Time

	lastSyncError string

	lastSyncSucceeded int

	lastSyncFailed int

	isConstructed bool
}

// NewStore creates a new Store in SyncIdle state.
func NewStore(
	id kernel.UUID,
	name string,
	platformDomain string,
	platformToken string,
	destinationURL string,
	destinationToken string,
	autoSync bool,
) (*Store, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if platformDomain == "" {
		return nil, errs.NewValueIsRequiredError("platformDomain")
	}

	return &Store{
		id:               id,
		name:             name,
		platformDomain:   platformDomain,
		platformToken:    platformToken,
		destinationURL:   destinationURL,
		destinationToken: destinationToken,
		autoSync:         autoSync,
		syncStatus:       SyncIdle,
		isConstructed:    true,
	}, nil
}

// RestoreStore reconstructs a Store from persistence.
func RestoreStore(
	id kernel.UUID,
	name string,
	platformDomain string,
	platformToken string,
	destinationURL string,
	destinationToken string,
	autoSync bool,
	syncStatus SyncStatus,
	lastSyncedAt *time.Time,
	lastSyncError string,
	lastSyncSucceeded int,
	lastSyncFailed int,
) (*Store, error) {
	if err := errors.Join(id.Validate(), syncStatus.Validate()); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	return &Store{
		id:                id,
		name:              name,
		platformDomain:    platformDomain,
		platformToken:     platformToken,
		destinationURL:    destinationURL,
		destinationToken:  destinationToken,
		autoSync:          autoSync,
		syncStatus:        syncStatus,
		lastSyncedAt:      lastSyncedAt,
		lastSyncError:     lastSyncError,
		lastSyncSucceeded: lastSyncSucceeded,
		lastSyncFailed:    lastSyncFailed,
		isConstructed:     true,
	}, nil
}

// Validate ensures the Store instance was properly constructed.
func (s *Store) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStoreIsNotConstructed
	}
	return nil
}

// ID returns the store's unique identifier.
func (s *Store) ID() kernel.UUID { return s.id }

// Name returns the store's display name.
func (s *Store) Name() string { return s.name }

// PlatformDomain returns the store's domain on the source platform.
func (s *Store) PlatformDomain() string { return s.platformDomain }

// PlatformToken returns the source platform access token.
func (s *Store) PlatformToken() string { return s.platformToken }

// DestinationURL returns the destination backend's base URL.
func (s *Store) DestinationURL() string { return s.destinationURL }

// DestinationToken returns the destination backend's access token.
func (s *Store) DestinationToken() string { return s.destinationToken }

// AutoSync reports whether the scheduled sync job covers this store.
func (s *Store) AutoSync() bool { return s.autoSync }

// SyncStatus returns the store's current sync state.
func (s *Store) SyncStatus() SyncStatus { return s.syncStatus }

// LastSyncedAt returns when the last sync pass finished, or nil.
func (s *Store) LastSyncedAt() *time.Time { return s.lastSyncedAt }

// LastSyncError returns the failure message of the last aborted sync.
func (s *Store) LastSyncError() string { return s.lastSyncError }

// LastSyncSucceeded returns how many products the last pass upserted.
func (s *Store) LastSyncSucceeded() int { return s.lastSyncSucceeded }

// LastSyncFailed returns how many products the last pass failed on.
func (s *Store) LastSyncFailed() int { return s.lastSyncFailed }

// ValidateSyncConfig checks that both platform and destination credentials
// are present before a sync may start.
func (s *Store) ValidateSyncConfig() error {
	if s.platformToken == "" {
		return errs.NewValueIsRequiredError("platformToken")
	}
	if s.destinationURL == "" {
		return errs.NewValueIsRequiredError("destinationURL")
	}
	if s.destinationToken == "" {
		return errs.NewValueIsRequiredError("destinationToken")
	}
	return nil
}

// BeginSync moves the store to SyncRunning.
// Fails with InvalidState if a sync is already in progress, which is what
// keeps two concurrent sync passes from interleaving on one store.
func (s *Store) BeginSync() error {
	if s.syncStatus == SyncRunning {
		return errs.NewInvalidStateError("begin sync", s.syncStatus.String())
	}

	s.syncStatus = SyncRunning
	s.lastSyncError = ""
	return nil
}

// CompleteSync records the outcome of a finished sync pass.
func (s *Store) CompleteSync(succeeded, failed int, now time.Time) error {
	if s.syncStatus != SyncRunning {
		return errs.NewInvalidStateError("complete sync", s.syncStatus.String())
	}

	s.syncStatus = SyncCompleted
	s.lastSyncSucceeded = succeeded
	s.lastSyncFailed = failed
	s.lastSyncedAt = &now
	return nil
}

// FailSync records an aborted sync pass with its failure message.
func (s *Store) FailSync(message string, now time.Time) error {
	if s.syncStatus != SyncRunning {
		return errs.NewInvalidStateError("fail sync", s.syncStatus.String())
	}

	s.syncStatus = SyncFailed
	s.lastSyncError = message
	s.lastSyncedAt = &now
	return nil
}
