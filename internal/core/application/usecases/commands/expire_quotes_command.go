package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrExpireQuotesCommandIsNotConstructed = errors.New(
	"ExpireQuotesCommand must be created via NewExpireQuotesCommand constructor",
)

// ExpireQuotesCommand sweeps active quotes whose expiry has passed.
type ExpireQuotesCommand struct {
	guard guard.ConstructorGuard
}

// NewExpireQuotesCommand creates a command to expire stale quotes.
func NewExpireQuotesCommand() ExpireQuotesCommand {
	return ExpireQuotesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c ExpireQuotesCommand) Validate() error {
	return c.guard.Validate(ErrExpireQuotesCommandIsNotConstructed)
}
