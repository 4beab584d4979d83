package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate to storage.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetLatestByOrder retrieves the most recently created delivery for an order.
	GetLatestByOrder(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error)

	// GetAllInStatus retrieves deliveries in the given status, newest first.
	GetAllInStatus(ctx context.Context, status delivery.Status, limit, offset int) ([]*delivery.Delivery, error)

	// CountInStatus returns the total number of deliveries in the given status.
	CountInStatus(ctx context.Context, status delivery.Status) (int64, error)
}

// QuoteRepository defines the persistence contract for delivery quotes.
type QuoteRepository interface {
	Add(ctx context.Context, quote *delivery.Quote) error

	Update(ctx context.Context, quote *delivery.Quote) error

	Get(ctx context.Context, id kernel.UUID) (*delivery.Quote, error)

	// GetAllActive retrieves quotes still in Active status, newest first.
	GetAllActive(ctx context.Context, limit, offset int) ([]*delivery.Quote, error)

	// CountActive returns the total number of Active quotes.
	CountActive(ctx context.Context) (int64, error)

	// GetAllActiveExpiredBefore retrieves Active quotes whose expiry has
	// already passed. Used by the expiry job.
	GetAllActiveExpiredBefore(ctx context.Context, moment time.Time) ([]*delivery.Quote, error)
}

// JobRecordRepository persists raw courier job payloads for audit.
// Records are append-only.
type JobRecordRepository interface {
	Add(ctx context.Context, record *delivery.JobRecord) error
}
