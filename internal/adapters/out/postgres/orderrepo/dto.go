// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by customer for account lookups and by status for lifecycle queries.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID `gorm:"type:uuid;index"`
	PaymentRef      string
	ShippingAddress string
	TotalAmount     int64
	Status          int        `gorm:"index"`
	DeliveryID      *uuid.UUID `gorm:"type:uuid"`
	CreatedAt       time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(ord *order.Order) OrderDTO {
	var deliveryID *uuid.UUID
	if id := ord.DeliveryID(); id != nil {
		raw := id.Bytes()
		deliveryID = &raw
	}

	return OrderDTO{
		ID:              ord.ID().Bytes(),
		CustomerID:      ord.CustomerID().Bytes(),
		PaymentRef:      ord.PaymentRef(),
		ShippingAddress: ord.ShippingAddress(),
		TotalAmount:     ord.Total().Amount(),
		Status:          int(ord.Status()),
		DeliveryID:      deliveryID,
		CreatedAt:       ord.CreatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	total, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}

	var deliveryID *kernel.UUID
	if dto.DeliveryID != nil {
		dID, deliveryErr := kernel.UUIDFromBytes((*dto.DeliveryID)[:])
		if deliveryErr != nil {
			return nil, deliveryErr
		}

		deliveryID = &dID
	}

	return order.RestoreOrder(
		id,
		customerID,
		total,
		dto.PaymentRef,
		dto.ShippingAddress,
		dto.CreatedAt,
		order.Status(dto.Status),
		deliveryID,
	)
}
