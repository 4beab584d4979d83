package product

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrMappingIsNotConstructed is returned when a Mapping was not created
// through the NewMapping factory method.
var ErrMappingIsNotConstructed = errors.New("Mapping must be created via NewMapping constructor")

// Mapping pairs a source-platform product with its destination-backend
// counterpart. Exactly one mapping exists per (store, source product); each
// sync pass upserts the destination reference.
type Mapping struct {
	id kernel.UUID

	storeID kernel.UUID

	sourceProductID string

	destinationProductID string

	syncedAt time.Time

	isConstructed bool
}

// NewMapping creates a product mapping for a store.
func NewMapping(
	id kernel.UUID,
	storeID kernel.UUID,
	sourceProductID string,
	destinationProductID string,
	syncedAt time.Time,
) (*Mapping, error) {
	if err := errors.Join(id.Validate(), storeID.Validate()); err != nil {
		return nil, err
	}
	if sourceProductID == "" {
		return nil, errs.NewValueIsRequiredError("sourceProductID")
	}
	if destinationProductID == "" {
		return nil, errs.NewValueIsRequiredError("destinationProductID")
	}

	return &Mapping{
		id:                   id,
		storeID:              storeID,
		sourceProductID:      sourceProductID,
		destinationProductID: destinationProductID,
		syncedAt:             syncedAt,
		isConstructed:        true,
	}, nil
}

// RestoreMapping reconstructs a Mapping from persistence.
func RestoreMapping(
	id kernel.UUID,
	storeID kernel.UUID,
	sourceProductID string,
	destinationProductID string,
	syncedAt time.Time,
) *Mapping {
	return &Mapping{
		id:                   id,
		storeID:              storeID,
		sourceProductID:      sourceProductID,
		destinationProductID: destinationProductID,
		syncedAt:             syncedAt,
		isConstructed:        true,
	}
}

// Refresh points the mapping at a possibly new destination product and
// stamps the sync time. Called on every sync pass for the product.
func (m *Mapping) Refresh(destinationProductID string, now time.Time) error {
	if destinationProductID == "" {
		return errs.NewValueIsRequiredError("destinationProductID")
	}
	m.destinationProductID = destinationProductID
	m.syncedAt = now
	return nil
}

// Validate ensures the mapping was properly constructed.
func (m *Mapping) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMappingIsNotConstructed
	}
	return nil
}

// ID returns the mapping's unique identifier.
func (m *Mapping) ID() kernel.UUID { return m.id }

// StoreID returns the owning store's identifier.
func (m *Mapping) StoreID() kernel.UUID { return m.storeID }

// SourceProductID returns the source platform's product identifier.
func (m *Mapping) SourceProductID() string { return m.sourceProductID }

// DestinationProductID returns the destination backend's product identifier.
func (m *Mapping) DestinationProductID() string { return m.destinationProductID }

// SyncedAt returns when the mapping was last written.
func (m *Mapping) SyncedAt() time.Time { return m.syncedAt }
