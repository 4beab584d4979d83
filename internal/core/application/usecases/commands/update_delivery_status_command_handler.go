package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/delivery"
)

// UpdateDeliveryStatusCommandHandler applies a courier status report to a
// delivery. The aggregate enforces forward-only movement; a Delivered report
// also marks the parent order delivered, and a terminal delivery rejects any
// further updates.
//
// A DeliveryFailed report only logs a warning. No customer notification is
// sent for failures.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory DeliveryUoWFactory
	logger     *slog.Logger
}

// NewUpdateDeliveryStatusCommandHandler creates a handler for delivery status updates.
func NewUpdateDeliveryStatusCommandHandler(uowFactory DeliveryUoWFactory, logger *slog.Logger) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "update_delivery_status"),
	}
}

// Handle processes the status report.
func (h *UpdateDeliveryStatusCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryStatusCommand) error {
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

	if err = del.AdvanceTo(cmd.Status()); err != nil {
		return err
	}

	del.UpdateDriver(cmd.DriverName(), cmd.DriverPhone())
	if cmd.Location() != "" {
		del.UpdateLocation(cmd.Location())
	}
	if cmd.ETA() != nil {
		del.UpdateETA(*cmd.ETA())
	}

	if err = uow.DeliveryRepository().Update(ctx, del); err != nil {
		return err
	}

	switch cmd.Status() {
	case delivery.Delivered:
		ord, getErr := uow.OrderRepository().Get(ctx, del.OrderID())
		if getErr != nil {
			return getErr
		}
		if err = ord.MarkDelivered(); err != nil {
			return err
		}
		if err = uow.OrderRepository().Update(ctx, ord); err != nil {
			return err
		}
	case delivery.DeliveryFailed:
		h.logger.WarnContext(ctx, "delivery failed",
			"deliveryId", del.ID().String(),
			"orderId", del.OrderID().String(),
			"location", del.LastLocation())
	}

	return uow.Commit(ctx)
}
