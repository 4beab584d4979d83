package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRequestDeliveryQuoteCommandIsNotConstructed = errors.New(
	"RequestDeliveryQuoteCommand must be created via NewRequestDeliveryQuoteCommand constructor",
)

// RequestDeliveryQuoteCommand asks the courier to price a delivery for an
// order. The pickup address is the merchant's; the dropoff defaults to the
// order's shipping address unless overridden.
type RequestDeliveryQuoteCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	dropoffOverride string
	itemCount       int

	guard guard.ConstructorGuard
}

// NewRequestDeliveryQuoteCommand creates a command to request a quote.
// Item count must be positive; the dropoff override is optional.
func NewRequestDeliveryQuoteCommand(orderID kernel.UUID, dropoffOverride string, itemCount int) (RequestDeliveryQuoteCommand, error) {
	cmd := RequestDeliveryQuoteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItemCount(itemCount),
	); err != nil {
		return RequestDeliveryQuoteCommand{}, err
	}

	cmd.dropoffOverride = dropoffOverride
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestDeliveryQuoteCommand) Validate() error {
	return c.guard.Validate(ErrRequestDeliveryQuoteCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to quote for.
func (c RequestDeliveryQuoteCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DropoffOverride returns the optional alternative dropoff address.
func (c RequestDeliveryQuoteCommand) DropoffOverride() string {
	return c.dropoffOverride
}

// ItemCount returns the number of packages in the delivery.
func (c RequestDeliveryQuoteCommand) ItemCount() int {
	return c.itemCount
}

func (c *RequestDeliveryQuoteCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RequestDeliveryQuoteCommand) setItemCount(itemCount int) error {
	if itemCount <= 0 {
		return errs.NewValueIsOutOfRangeError("itemCount", itemCount, 1, 1000)
	}

	c.itemCount = itemCount
	return nil
}
