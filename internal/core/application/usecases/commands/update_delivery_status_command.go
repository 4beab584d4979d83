package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand carries a courier status report for a delivery,
// either from a webhook or a manual operator correction. Driver, location and
// ETA fields are optional and only overwrite when present.
type UpdateDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	deliveryID  kernel.UUID
	status      delivery.Status
	driverName  string
	driverPhone string
	location    string
	eta         *time.Time

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryStatusCommand creates a command from a status report.
// The status string must map to a known delivery status.
func NewUpdateDeliveryStatusCommand(
	deliveryID kernel.UUID,
	status string,
	driverName string,
	driverPhone string,
	location string,
	eta *time.Time,
) (UpdateDeliveryStatusCommand, error) {
	cmd := UpdateDeliveryStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setDeliveryID(deliveryID); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}

	resolved, err := delivery.StatusFromString(status)
	if err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}

	cmd.status = resolved
	cmd.driverName = driverName
	cmd.driverPhone = driverPhone
	cmd.location = location
	cmd.eta = eta
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery being updated.
func (c UpdateDeliveryStatusCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Status returns the resolved target status.
func (c UpdateDeliveryStatusCommand) Status() delivery.Status {
	return c.status
}

// DriverName returns the reported driver name, empty when absent.
func (c UpdateDeliveryStatusCommand) DriverName() string {
	return c.driverName
}

// DriverPhone returns the reported driver phone, empty when absent.
func (c UpdateDeliveryStatusCommand) DriverPhone() string {
	return c.driverPhone
}

// Location returns the reported courier location, empty when absent.
func (c UpdateDeliveryStatusCommand) Location() string {
	return c.location
}

// ETA returns the reported arrival estimate, nil when absent.
func (c UpdateDeliveryStatusCommand) ETA() *time.Time {
	return c.eta
}

func (c *UpdateDeliveryStatusCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}
