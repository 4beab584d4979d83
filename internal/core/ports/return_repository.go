// Package ports defines repository and gateway interfaces for the fulfillment
// domain. These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"
)

// ReturnRepository defines the persistence contract for return aggregates.
type ReturnRepository interface {
	// Add persists a new return aggregate to storage.
	// The return must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *returns.Return) error

	// Update persists changes to an existing return aggregate.
	Update(ctx context.Context, aggregate *returns.Return) error

	// Get retrieves a return aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*returns.Return, error)

	// GetAllInStatus retrieves returns in the given status, newest first.
	GetAllInStatus(ctx context.Context, status returns.Status, limit, offset int) ([]*returns.Return, error)

	// CountInStatus returns the total number of returns in the given status.
	CountInStatus(ctx context.Context, status returns.Status) (int64, error)
}

// RefundRecordRepository persists immutable refund records.
// Records are append-only: written once after a successful refund.
type RefundRecordRepository interface {
	Add(ctx context.Context, record *returns.RefundRecord) error
}
