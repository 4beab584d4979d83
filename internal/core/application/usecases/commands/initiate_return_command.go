package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrInitiateReturnCommandIsNotConstructed = errors.New(
	"InitiateReturnCommand must be created via NewInitiateReturnCommand constructor",
)

// InitiateReturnCommand represents a customer's request to return items from
// an order. The refund amount defaults to the order total; an operator may
// override it at approval time.
type InitiateReturnCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	reason  string
	itemIDs []string
	comment string

	guard guard.ConstructorGuard
}

// NewInitiateReturnCommand creates a command to open a return for an order.
// Reason and at least one item are required; the comment is optional.
func NewInitiateReturnCommand(orderID kernel.UUID, reason string, itemIDs []string, comment string) (InitiateReturnCommand, error) {
	cmd := InitiateReturnCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setReason(reason),
		cmd.setItemIDs(itemIDs),
	); err != nil {
		return InitiateReturnCommand{}, err
	}

	cmd.comment = comment
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c InitiateReturnCommand) Validate() error {
	return c.guard.Validate(ErrInitiateReturnCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being returned against.
func (c InitiateReturnCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns the customer's stated reason for the return.
func (c InitiateReturnCommand) Reason() string {
	return c.reason
}

// ItemIDs returns the line items included in the return.
func (c InitiateReturnCommand) ItemIDs() []string {
	return append([]string(nil), c.itemIDs...)
}

// Comment returns the optional free-form customer comment.
func (c InitiateReturnCommand) Comment() string {
	return c.comment
}

func (c *InitiateReturnCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *InitiateReturnCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	c.reason = reason
	return nil
}

func (c *InitiateReturnCommand) setItemIDs(itemIDs []string) error {
	if len(itemIDs) == 0 {
		return errs.NewValueIsRequiredError("itemIDs")
	}
	for _, id := range itemIDs {
		if id == "" {
			return errs.NewValueIsInvalidError("itemIDs")
		}
	}

	c.itemIDs = append([]string(nil), itemIDs...)
	return nil
}
