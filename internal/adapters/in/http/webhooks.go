package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
)

// Webhook endpoints always acknowledge with 200 so the courier does not
// retry; processing failures are logged and reconciled by the status poll.

type returnStatusWebhookRequest struct {
	ReturnID string `json:"return_id"`
	Status   string `json:"status"`
}

type deliveryStatusWebhookRequest struct {
	DeliveryID  string     `json:"delivery_id"`
	Status      string     `json:"status"`
	DriverName  string     `json:"driver_name"`
	DriverPhone string     `json:"driver_phone"`
	Location    string     `json:"location"`
	ETA         *time.Time `json:"eta"`
}

type webhookResponse struct {
	Received bool `json:"received"`
}

func acknowledge(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, webhookResponse{Received: true})
}

// ReturnStatusWebhook handles POST /webhooks/courier/returns.
func (s *Server) ReturnStatusWebhook(ctx echo.Context) error {
	var req returnStatusWebhookRequest
	if err := ctx.Bind(&req); err != nil {
		s.logger.Warn("return webhook body unreadable", "error", err)
		return acknowledge(ctx)
	}

	returnID, err := kernel.UUIDFromString(req.ReturnID)
	if err != nil {
		s.logger.Warn("return webhook carries invalid return_id", "return_id", req.ReturnID, "error", err)
		return acknowledge(ctx)
	}

	cmd, err := commands.NewUpdateReturnStatusCommand(returnID, req.Status)
	if err != nil {
		s.logger.Warn("return webhook rejected", "return_id", req.ReturnID, "status", req.Status, "error", err)
		return acknowledge(ctx)
	}

	if err := s.updateReturnStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		s.logger.Warn("return webhook processing failed", "return_id", req.ReturnID, "error", err)
	}
	return acknowledge(ctx)
}

// DeliveryStatusWebhook handles POST /webhooks/courier/deliveries.
func (s *Server) DeliveryStatusWebhook(ctx echo.Context) error {
	var req deliveryStatusWebhookRequest
	if err := ctx.Bind(&req); err != nil {
		s.logger.Warn("delivery webhook body unreadable", "error", err)
		return acknowledge(ctx)
	}

	deliveryID, err := kernel.UUIDFromString(req.DeliveryID)
	if err != nil {
		s.logger.Warn("delivery webhook carries invalid delivery_id", "delivery_id", req.DeliveryID, "error", err)
		return acknowledge(ctx)
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(deliveryID, req.Status, req.DriverName, req.DriverPhone, req.Location, req.ETA)
	if err != nil {
		s.logger.Warn("delivery webhook rejected", "delivery_id", req.DeliveryID, "status", req.Status, "error", err)
		return acknowledge(ctx)
	}

	if err := s.updateDeliveryStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		s.logger.Warn("delivery webhook processing failed", "delivery_id", req.DeliveryID, "error", err)
	}
	return acknowledge(ctx)
}
