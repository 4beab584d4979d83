package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrSyncStoreCommandIsNotConstructed = errors.New(
	"SyncStoreCommand must be created via NewSyncStoreCommand constructor",
)

// SyncStoreCommand triggers a full catalog sync for a connected store.
type SyncStoreCommand struct { //nolint:recvcheck //using for validation
	storeID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSyncStoreCommand creates a command to sync a store's catalog.
func NewSyncStoreCommand(storeID kernel.UUID) (SyncStoreCommand, error) {
	cmd := SyncStoreCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setStoreID(storeID); err != nil {
		return SyncStoreCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SyncStoreCommand) Validate() error {
	return c.guard.Validate(ErrSyncStoreCommandIsNotConstructed)
}

// StoreID returns the identifier of the store to sync.
func (c SyncStoreCommand) StoreID() kernel.UUID {
	return c.storeID
}

func (c *SyncStoreCommand) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}

	c.storeID = storeID
	return nil
}
