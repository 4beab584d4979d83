package commands

import (
	"context"
	"errors"
	"log/slog"

	"fulfillment/internal/pkg/errs"
)

// UpdateReturnStatusCommandHandler applies courier webhook progress to a
// return. Updates only move the return forward; stale or out-of-order
// webhooks are rejected by the aggregate.
//
// A webhook for an unknown return is logged and swallowed so the courier
// stops retrying a delivery we will never recognize.
type UpdateReturnStatusCommandHandler struct {
	uowFactory ReturnUoWFactory
	logger     *slog.Logger
}

// NewUpdateReturnStatusCommandHandler creates a handler for webhook return updates.
func NewUpdateReturnStatusCommandHandler(uowFactory ReturnUoWFactory, logger *slog.Logger) UpdateReturnStatusCommandHandler {
	return UpdateReturnStatusCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "update_return_status"),
	}
}

// Handle processes the webhook status update.
func (h *UpdateReturnStatusCommandHandler) Handle(ctx context.Context, cmd UpdateReturnStatusCommand) error {
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

	r, err := uow.ReturnRepository().Get(ctx, cmd.ReturnID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			h.logger.WarnContext(ctx, "webhook for unknown return",
				"returnId", cmd.ReturnID().String(),
				"status", cmd.Status().String())
			return nil
		}
		return err
	}

	if err = r.AdvanceTo(cmd.Status()); err != nil {
		return err
	}

	if err = uow.ReturnRepository().Update(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
