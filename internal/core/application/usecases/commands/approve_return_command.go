package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrApproveReturnCommandIsNotConstructed = errors.New(
	"ApproveReturnCommand must be created via NewApproveReturnCommand constructor",
)

// ApproveReturnCommand represents an operator's approval of a pending return.
// An optional amount overrides the provisional refund amount.
type ApproveReturnCommand struct { //nolint:recvcheck //using for validation
	returnID kernel.UUID
	amount   *kernel.Money

	guard guard.ConstructorGuard
}

// NewApproveReturnCommand creates a command to approve a return.
// Amount is optional; nil keeps the amount captured at initiation.
func NewApproveReturnCommand(returnID kernel.UUID, amount *kernel.Money) (ApproveReturnCommand, error) {
	cmd := ApproveReturnCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setReturnID(returnID); err != nil {
		return ApproveReturnCommand{}, err
	}

	cmd.amount = amount
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveReturnCommand) Validate() error {
	return c.guard.Validate(ErrApproveReturnCommandIsNotConstructed)
}

// ReturnID returns the identifier of the return to approve.
func (c ApproveReturnCommand) ReturnID() kernel.UUID {
	return c.returnID
}

// Amount returns the optional refund amount override.
func (c ApproveReturnCommand) Amount() *kernel.Money {
	return c.amount
}

func (c *ApproveReturnCommand) setReturnID(returnID kernel.UUID) error {
	if err := returnID.Validate(); err != nil {
		return err
	}

	c.returnID = returnID
	return nil
}
