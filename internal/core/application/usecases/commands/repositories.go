// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ReturnRepoFactory provides access to the return repository within a transaction.
	ReturnRepoFactory interface {
		ReturnRepository() ports.ReturnRepository
	}

	// RefundRecordRepoFactory provides access to the refund record repository within a transaction.
	RefundRecordRepoFactory interface {
		RefundRecordRepository() ports.RefundRecordRepository
	}

	// DeliveryRepoFactory provides access to the delivery repository within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// QuoteRepoFactory provides access to the quote repository within a transaction.
	QuoteRepoFactory interface {
		QuoteRepository() ports.QuoteRepository
	}

	// JobRecordRepoFactory provides access to the courier job audit repository within a transaction.
	JobRecordRepoFactory interface {
		JobRecordRepository() ports.JobRecordRepository
	}

	// StoreRepoFactory provides access to the store repository within a transaction.
	StoreRepoFactory interface {
		StoreRepository() ports.StoreRepository
	}

	// MappingRepoFactory provides access to the product mapping repository within a transaction.
	MappingRepoFactory interface {
		MappingRepository() ports.MappingRepository
	}

	// ReturnUoW manages transactions for return lifecycle operations.
	// Covers the order lookup, the return itself and its side records.
	ReturnUoW interface {
		TxManager
		OrderRepoFactory
		ReturnRepoFactory
		RefundRecordRepoFactory
		JobRecordRepoFactory
	}

	// ReturnUoWFactory creates new return unit of work instances.
	ReturnUoWFactory interface {
		Create() ReturnUoW
	}

	// DeliveryUoW manages transactions for delivery lifecycle operations.
	DeliveryUoW interface {
		TxManager
		OrderRepoFactory
		DeliveryRepoFactory
		QuoteRepoFactory
		JobRecordRepoFactory
	}

	// DeliveryUoWFactory creates new delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// SyncUoW manages transactions for catalog sync operations.
	SyncUoW interface {
		TxManager
		StoreRepoFactory
		MappingRepoFactory
	}

	// SyncUoWFactory creates new sync unit of work instances.
	SyncUoWFactory interface {
		Create() SyncUoW
	}
)
