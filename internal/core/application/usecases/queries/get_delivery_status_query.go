package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetDeliveryStatusQueryIsNotConstructed = errors.New(
		"GetDeliveryStatusQuery must be created via NewGetDeliveryStatusQuery constructor",
	)
)

// GetDeliveryStatusQuery retrieves the current state of an order's latest
// delivery, refreshed from the courier when the cached view has gone stale.
type GetDeliveryStatusQuery struct {
	guard   guard.ConstructorGuard
	orderID kernel.UUID
}

// NewGetDeliveryStatusQuery creates a query for an order's delivery status.
func NewGetDeliveryStatusQuery(orderID kernel.UUID) (GetDeliveryStatusQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetDeliveryStatusQuery{}, err
	}

	return GetDeliveryStatusQuery{
		guard:   guard.NewConstructorGuard(),
		orderID: orderID,
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryStatusQueryIsNotConstructed)
}

// OrderID returns the identifier of the order whose delivery is requested.
func (q GetDeliveryStatusQuery) OrderID() kernel.UUID { return q.orderID }

// DeliveryStatusDetail is the read model of an order's latest delivery.
type DeliveryStatusDetail struct {
	DeliveryID   kernel.UUID
	OrderID      kernel.UUID
	CourierJobID string
	Status       string
	DriverName   string
	DriverPhone  string
	Location     string
	ETA          *time.Time
	Price        int64
	CreatedAt    time.Time
}
