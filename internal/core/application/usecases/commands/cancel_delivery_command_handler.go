package commands

import (
	"context"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// CancelDeliveryCommandHandler cancels a delivery locally and at the courier.
//
// The courier job is cancelled first: if the provider refuses, the local
// delivery keeps its current status and the error propagates.
type CancelDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	courier    ports.CourierGateway
}

// NewCancelDeliveryCommandHandler creates a handler for delivery cancellation.
func NewCancelDeliveryCommandHandler(uowFactory DeliveryUoWFactory, courier ports.CourierGateway) CancelDeliveryCommandHandler {
	return CancelDeliveryCommandHandler{
		uowFactory: uowFactory,
		courier:    courier,
	}
}

// Handle processes the cancellation command.
func (h *CancelDeliveryCommandHandler) Handle(ctx context.Context, cmd CancelDeliveryCommand) error {
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

	del, err := uow.DeliveryRepository().Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	// reject terminal deliveries before touching the courier
	if del.Status().IsFinal() {
		return errs.NewInvalidStateError("cancel", del.Status().String())
	}

	if del.CourierJobID() != "" {
		if err = h.courier.CancelJob(ctx, del.CourierJobID()); err != nil {
			return err
		}
	}

	if err = del.Cancel(cmd.Reason()); err != nil {
		return err
	}

	if err = uow.DeliveryRepository().Update(ctx, del); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
