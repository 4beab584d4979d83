package queries

import (
	"context"

	"fulfillment/internal/core/ports"
)

// GetDeliveryStatus refreshes the persisted delivery when the courier reports
// a change, so unlike the raw-SQL queries it goes through a unit of work.
type (
	// DeliveryReadUoW is the transaction surface the delivery status query needs.
	// The order repository is required because a polled Delivered report marks
	// the parent order delivered, same as the webhook path.
	DeliveryReadUoW interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error

		DeliveryRepository() ports.DeliveryRepository
		OrderRepository() ports.OrderRepository
	}

	// DeliveryReadUoWFactory creates a unit of work per query execution.
	DeliveryReadUoWFactory interface {
		Create() DeliveryReadUoW
	}
)
