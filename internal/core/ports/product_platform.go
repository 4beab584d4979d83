package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/store"
)

// ProductPage is one page of products read from the source platform.
type ProductPage struct {
	Products []product.SourceProduct

	// NextPageToken is empty when this is the last page.
	NextPageToken string
}

// ProductSource reads the catalog of a connected store from its commerce
// platform. Page size is provider-bounded; callers iterate until
// NextPageToken comes back empty.
type ProductSource interface {
	ListActiveProducts(ctx context.Context, s *store.Store, pageToken string) (ProductPage, error)
}

// ProductDestination writes products to the order-management backend a store
// is connected to. Products are addressed by handle.
type ProductDestination interface {
	// GetIDByHandle resolves a destination product id by handle.
	// Returns ObjectNotFoundError when the handle is unknown.
	GetIDByHandle(ctx context.Context, s *store.Store, handle string) (string, error)

	// Create inserts a new product and returns its destination id.
	Create(ctx context.Context, s *store.Store, p product.DestinationProduct) (string, error)

	// Update overwrites an existing product.
	Update(ctx context.Context, s *store.Store, id string, p product.DestinationProduct) error
}
