package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateReturnStatusCommandIsNotConstructed = errors.New(
	"UpdateReturnStatusCommand must be created via NewUpdateReturnStatusCommand constructor",
)

// UpdateReturnStatusCommand carries a courier webhook's report of return
// pickup progress. The raw status string is resolved here so unrecognized
// values fail before the handler runs.
type UpdateReturnStatusCommand struct { //nolint:recvcheck //using for validation
	returnID kernel.UUID
	status   returns.Status

	guard guard.ConstructorGuard
}

// NewUpdateReturnStatusCommand creates a command from a webhook payload.
// The status string must map to a known return status.
func NewUpdateReturnStatusCommand(returnID kernel.UUID, status string) (UpdateReturnStatusCommand, error) {
	cmd := UpdateReturnStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setReturnID(returnID); err != nil {
		return UpdateReturnStatusCommand{}, err
	}

	resolved, err := returns.StatusFromString(status)
	if err != nil {
		return UpdateReturnStatusCommand{}, err
	}

	cmd.status = resolved
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateReturnStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateReturnStatusCommandIsNotConstructed)
}

// ReturnID returns the identifier of the return being updated.
func (c UpdateReturnStatusCommand) ReturnID() kernel.UUID {
	return c.returnID
}

// Status returns the resolved target status.
func (c UpdateReturnStatusCommand) Status() returns.Status {
	return c.status
}

func (c *UpdateReturnStatusCommand) setReturnID(returnID kernel.UUID) error {
	if err := returnID.Validate(); err != nil {
		return err
	}

	c.returnID = returnID
	return nil
}
