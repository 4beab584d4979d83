package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRejectReturnCommandIsNotConstructed = errors.New(
	"RejectReturnCommand must be created via NewRejectReturnCommand constructor",
)

// RejectReturnCommand represents an operator's rejection of a return request.
// Rejection is only possible before approval.
type RejectReturnCommand struct { //nolint:recvcheck //using for validation
	returnID kernel.UUID
	reason   string

	guard guard.ConstructorGuard
}

// NewRejectReturnCommand creates a command to reject a return.
// A rejection reason is required.
func NewRejectReturnCommand(returnID kernel.UUID, reason string) (RejectReturnCommand, error) {
	cmd := RejectReturnCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setReturnID(returnID),
		cmd.setReason(reason),
	); err != nil {
		return RejectReturnCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectReturnCommand) Validate() error {
	return c.guard.Validate(ErrRejectReturnCommandIsNotConstructed)
}

// ReturnID returns the identifier of the return to reject.
func (c RejectReturnCommand) ReturnID() kernel.UUID {
	return c.returnID
}

// Reason returns the operator's rejection reason.
func (c RejectReturnCommand) Reason() string {
	return c.reason
}

func (c *RejectReturnCommand) setReturnID(returnID kernel.UUID) error {
	if err := returnID.Validate(); err != nil {
		return err
	}

	c.returnID = returnID
	return nil
}

func (c *RejectReturnCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	c.reason = reason
	return nil
}
