package commands

import (
	"context"
	"time"

	"log/slog"
)

// ExpireQuotesCommandHandler marks active quotes past their expiry as
// expired. Runs from the scheduler; a sweep that finds nothing is the
// common case.
type ExpireQuotesCommandHandler struct {
	uowFactory DeliveryUoWFactory
	logger     *slog.Logger
}

// NewExpireQuotesCommandHandler creates a handler for the quote expiry sweep.
func NewExpireQuotesCommandHandler(uowFactory DeliveryUoWFactory, logger *slog.Logger) ExpireQuotesCommandHandler {
	return ExpireQuotesCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "expire_quotes"),
	}
}

// Handle processes the expiry sweep command.
func (h *ExpireQuotesCommandHandler) Handle(ctx context.Context, cmd ExpireQuotesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stale, err := uow.QuoteRepository().GetAllActiveExpiredBefore(ctx, time.Now())
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		return uow.Commit(ctx)
	}

	for _, quote := range stale {
		if err = quote.MarkExpired(); err != nil {
			return err
		}
		if err = uow.QuoteRepository().Update(ctx, quote); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.Info("expired stale quotes", "count", len(stale))
	return nil
}
