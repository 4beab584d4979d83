package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/ports"
)

// RejectReturnCommandHandler rejects a return that has not been approved yet.
type RejectReturnCommandHandler struct {
	uowFactory ReturnUoWFactory
	notifier   ports.Notifier
}

// NewRejectReturnCommandHandler creates a handler for return rejection.
func NewRejectReturnCommandHandler(uowFactory ReturnUoWFactory, notifier ports.Notifier) RejectReturnCommandHandler {
	return RejectReturnCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the return rejection command.
// Rejection is only permitted from pre-approval statuses.
func (h *RejectReturnCommandHandler) Handle(ctx context.Context, cmd RejectReturnCommand) error {
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
		return err
	}

	if err = r.Reject(cmd.Reason(), time.Now()); err != nil {
		return err
	}

	if err = uow.ReturnRepository().Update(ctx, r); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	payload := fmt.Sprintf(`{"returnId":%q,"reason":%q}`, r.ID().String(), cmd.Reason())
	h.notifier.NotifyCustomer(ctx, r.CustomerID(), "return_rejected", payload)

	return nil
}
