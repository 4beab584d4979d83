package delivery

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
	// created through the NewDelivery factory method.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")
)

// Delivery represents a forward delivery from courier job creation to
// completion. It tracks the courier job reference, driver contact details,
// and the last position report from the courier.
//
// Delivery follows these invariants:
//   - Must reference a valid order and quote
//   - Status only advances forward, or diverts to a final failure state
//   - Final states are entered at most once
type Delivery struct {
	id kernel.UUID

	orderID kernel.UUID

	quoteID kernel.UUID

	// courierJobID is the provider-issued delivery job reference
	courierJobID string

	status Status

	driverName string

	driverPhone string

	// lastLocation is the courier's last reported position, free-form
	lastLocation string

	eta *time.Time

	price kernel.Money

	cancelReason string

	createdAt time.Time

	isConstructed bool
}

// NewDelivery creates a new Delivery in Confirmed status.
// The courier job must already exist; its reference is required.
func NewDelivery(
	id kernel.UUID,
	orderID kernel.UUID,
	quoteID kernel.UUID,
	courierJobID string,
	price kernel.Money,
	createdAt time.Time,
) (*Delivery, error) {
	d := &Delivery{
		status:        Confirmed,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setQuoteID(quoteID),
		d.setCourierJobID(courierJobID),
		d.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	d.price = price
	return d, nil
}

// RestoreDelivery reconstructs a Delivery from persistence.
func RestoreDelivery(
	id kernel.UUID,
	orderID kernel.UUID,
	quoteID kernel.UUID,
	courierJobID string,
	status Status,
	driverName string,
	driverPhone string,
	lastLocation string,
	eta *time.Time,
	price kernel.Money,
	cancelReason string,
	createdAt time.Time,
) (*Delivery, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	d := &Delivery{
		status:        status,
		driverName:    driverName,
		driverPhone:   driverPhone,
		lastLocation:  lastLocation,
		eta:           eta,
		cancelReason:  cancelReason,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setQuoteID(quoteID),
		d.setCourierJobID(courierJobID),
		d.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	d.price = price
	return d, nil
}

// Validate ensures the Delivery instance was properly constructed.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID { return d.id }

// OrderID returns the delivered order's identifier.
func (d *Delivery) OrderID() kernel.UUID { return d.orderID }

// QuoteID returns the accepted quote's identifier.
func (d *Delivery) QuoteID() kernel.UUID { return d.quoteID }

// CourierJobID returns the provider-issued delivery job reference.
func (d *Delivery) CourierJobID() string { return d.courierJobID }

// Status returns the current lifecycle status.
func (d *Delivery) Status() Status { return d.status }

// DriverName returns the assigned driver's name, if reported.
func (d *Delivery) DriverName() string { return d.driverName }

// DriverPhone returns the assigned driver's phone, if reported.
func (d *Delivery) DriverPhone() string { return d.driverPhone }

// LastLocation returns the courier's last reported position.
func (d *Delivery) LastLocation() string { return d.lastLocation }

// ETA returns the estimated arrival time, or nil.
func (d *Delivery) ETA() *time.Time { return d.eta }

// Price returns the delivery price in minor units.
func (d *Delivery) Price() kernel.Money { return d.price }

// CancelReason returns the cancellation reason, if the delivery was cancelled.
func (d *Delivery) CancelReason() string { return d.cancelReason }

// CreatedAt returns when the delivery was confirmed.
func (d *Delivery) CreatedAt() time.Time { return d.createdAt }

// AdvanceTo applies a courier-reported status move.
// Driver and position details, when present, are recorded alongside.
func (d *Delivery) AdvanceTo(target Status) error {
	newStatus, err := d.status.AdvanceTo(target)
	if err != nil {
		return err
	}

	d.status = newStatus
	return nil
}

// UpdateDriver records the assigned driver's contact details.
// Empty values leave the existing details untouched.
func (d *Delivery) UpdateDriver(name, phone string) {
	if name != "" {
		d.driverName = name
	}
	if phone != "" {
		d.driverPhone = phone
	}
}

// UpdateLocation records the courier's last reported position.
func (d *Delivery) UpdateLocation(location string) {
	if location != "" {
		d.lastLocation = location
	}
}

// UpdateETA records the courier's estimated arrival time.
func (d *Delivery) UpdateETA(eta time.Time) {
	d.eta = &eta
}

// Cancel moves the delivery to Cancelled with the given reason.
// Final states cannot be cancelled.
func (d *Delivery) Cancel(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	newStatus, err := d.status.AdvanceTo(Cancelled)
	if err != nil {
		return err
	}

	d.status = newStatus
	d.cancelReason = reason
	return nil
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}
	d.orderID = id
	return nil
}

func (d *Delivery) setQuoteID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("quoteID", err)
	}
	d.quoteID = id
	return nil
}

func (d *Delivery) setCourierJobID(jobID string) error {
	if jobID == "" {
		return errs.NewValueIsRequiredError("courierJobID")
	}
	d.courierJobID = jobID
	return nil
}

func (d *Delivery) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	d.createdAt = createdAt
	return nil
}
