package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ReturnWindow is the period after order placement during which a customer
// may initiate a return.
const ReturnWindow = 30 * 24 * time.Hour

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order represents a customer order placed on the upstream commerce platform.
// It is the aggregate root that deliveries and returns reference, and it carries
// the monetary total and payment reference needed for refunds.
//
// Order follows these invariants:
//   - Must have valid unique and customer identifiers
//   - Total is expressed in minor units and never negative
//   - Status transitions follow defined business rules
//   - Can only be created through NewOrder or restored through RestoreOrder
type Order struct {
	id kernel.UUID

	customerID kernel.UUID

	// paymentRef is the upstream payment reference refunds are issued against
	paymentRef string

	// shippingAddress is where the order is delivered and returns are picked up
	shippingAddress string

	total kernel.Money

	createdAt time.Time

	status Status

	// deliveryID references the active forward delivery (nil before confirmation)
	deliveryID *kernel.UUID

	isConstructed bool
}

// NewOrder creates a new Order instance with validation. This is the only way to create
// a valid Order, ensuring all business invariants are maintained.
//
// The order starts in Created status with no delivery attached.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	total kernel.Money,
	paymentRef string,
	shippingAddress string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Created,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	o.total = total
	o.paymentRef = paymentRef
	o.shippingAddress = shippingAddress
	return o, nil
}

// RestoreOrder reconstructs an Order from persistence without running the
// Created-status initialization. The stored status must be valid.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	total kernel.Money,
	paymentRef string,
	shippingAddress string,
	createdAt time.Time,
	status Status,
	deliveryID *kernel.UUID,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	o := &Order{
		status:        status,
		deliveryID:    deliveryID,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	o.total = total
	o.paymentRef = paymentRef
	o.shippingAddress = shippingAddress
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed otherwise.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Total returns the order's monetary total in minor units.
func (o *Order) Total() kernel.Money {
	return o.total
}

// PaymentRef returns the upstream payment reference for the order.
func (o *Order) PaymentRef() string {
	return o.paymentRef
}

// ShippingAddress returns the order's delivery address.
func (o *Order) ShippingAddress() string {
	return o.shippingAddress
}

// CreatedAt returns the order placement timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// DeliveryID returns the active delivery's identifier.
// Returns nil if no delivery has been confirmed.
func (o *Order) DeliveryID() *kernel.UUID {
	return o.deliveryID
}

// WithinReturnWindow reports whether a return may still be initiated at the
// given moment. The window is ReturnWindow measured from order placement.
func (o *Order) WithinReturnWindow(now time.Time) bool {
	return now.Sub(o.createdAt) <= ReturnWindow
}

// ConfirmDelivery attaches a confirmed delivery to the order and moves the
// status to DeliveryConfirmed.
func (o *Order) ConfirmDelivery(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.ConfirmDelivery()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.deliveryID = &deliveryID
	return nil
}

// MarkDelivered records the courier's delivered report against the order.
// The order must be in DeliveryConfirmed status.
func (o *Order) MarkDelivered() error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkRefunded records a processed refund against the order.
// Refunded is a final state.
func (o *Order) MarkRefunded() error {
	newStatus, err := o.status.Refund()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}
