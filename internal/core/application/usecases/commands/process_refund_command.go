package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrProcessRefundCommandIsNotConstructed = errors.New(
	"ProcessRefundCommand must be created via NewProcessRefundCommand constructor",
)

// ProcessRefundCommand represents a request to refund a received return.
type ProcessRefundCommand struct { //nolint:recvcheck //using for validation
	returnID kernel.UUID

	guard guard.ConstructorGuard
}

// NewProcessRefundCommand creates a command to refund a return.
func NewProcessRefundCommand(returnID kernel.UUID) (ProcessRefundCommand, error) {
	cmd := ProcessRefundCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setReturnID(returnID); err != nil {
		return ProcessRefundCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessRefundCommand) Validate() error {
	return c.guard.Validate(ErrProcessRefundCommandIsNotConstructed)
}

// ReturnID returns the identifier of the return to refund.
func (c ProcessRefundCommand) ReturnID() kernel.UUID {
	return c.returnID
}

func (c *ProcessRefundCommand) setReturnID(returnID kernel.UUID) error {
	if err := returnID.Validate(); err != nil {
		return err
	}

	c.returnID = returnID
	return nil
}
