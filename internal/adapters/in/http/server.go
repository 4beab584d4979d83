// Package http exposes the service over JSON/REST with echo. Handlers
// translate requests into commands and queries and map domain errors onto
// HTTP status codes; webhook endpoints always acknowledge with 200.
package http

import (
	"errors"
	"net/http"
	"time"

	"log/slog"

	"github.com/labstack/echo/v4"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	initiateReturnHandler       commands.InitiateReturnCommandHandler
	approveReturnHandler        commands.ApproveReturnCommandHandler
	rejectReturnHandler         commands.RejectReturnCommandHandler
	processRefundHandler        commands.ProcessRefundCommandHandler
	requestDeliveryQuoteHandler commands.RequestDeliveryQuoteCommandHandler
	confirmDeliveryHandler      commands.ConfirmDeliveryCommandHandler
	cancelDeliveryHandler       commands.CancelDeliveryCommandHandler
	syncStoreHandler            commands.SyncStoreCommandHandler
	updateReturnStatusHandler   commands.UpdateReturnStatusCommandHandler
	updateDeliveryStatusHandler commands.UpdateDeliveryStatusCommandHandler

	// Query handlers
	listReturnsHandler       queries.ListReturnsByStatusQueryHandler
	getReturnHandler         queries.GetReturnQueryHandler
	listDeliveriesHandler    queries.ListDeliveriesByStatusQueryHandler
	listActiveQuotesHandler  queries.ListActiveQuotesQueryHandler
	getDeliveryStatusHandler queries.GetDeliveryStatusQueryHandler
	getSyncStatusHandler     queries.GetSyncStatusQueryHandler

	logger *slog.Logger
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	initiateReturnHandler commands.InitiateReturnCommandHandler,
	approveReturnHandler commands.ApproveReturnCommandHandler,
	rejectReturnHandler commands.RejectReturnCommandHandler,
	processRefundHandler commands.ProcessRefundCommandHandler,
	requestDeliveryQuoteHandler commands.RequestDeliveryQuoteCommandHandler,
	confirmDeliveryHandler commands.ConfirmDeliveryCommandHandler,
	cancelDeliveryHandler commands.CancelDeliveryCommandHandler,
	syncStoreHandler commands.SyncStoreCommandHandler,
	updateReturnStatusHandler commands.UpdateReturnStatusCommandHandler,
	updateDeliveryStatusHandler commands.UpdateDeliveryStatusCommandHandler,
	listReturnsHandler queries.ListReturnsByStatusQueryHandler,
	getReturnHandler queries.GetReturnQueryHandler,
	listDeliveriesHandler queries.ListDeliveriesByStatusQueryHandler,
	listActiveQuotesHandler queries.ListActiveQuotesQueryHandler,
	getDeliveryStatusHandler queries.GetDeliveryStatusQueryHandler,
	getSyncStatusHandler queries.GetSyncStatusQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		initiateReturnHandler:       initiateReturnHandler,
		approveReturnHandler:        approveReturnHandler,
		rejectReturnHandler:         rejectReturnHandler,
		processRefundHandler:        processRefundHandler,
		requestDeliveryQuoteHandler: requestDeliveryQuoteHandler,
		confirmDeliveryHandler:      confirmDeliveryHandler,
		cancelDeliveryHandler:       cancelDeliveryHandler,
		syncStoreHandler:            syncStoreHandler,
		updateReturnStatusHandler:   updateReturnStatusHandler,
		updateDeliveryStatusHandler: updateDeliveryStatusHandler,
		listReturnsHandler:          listReturnsHandler,
		getReturnHandler:            getReturnHandler,
		listDeliveriesHandler:       listDeliveriesHandler,
		listActiveQuotesHandler:     listActiveQuotesHandler,
		getDeliveryStatusHandler:    getDeliveryStatusHandler,
		getSyncStatusHandler:        getSyncStatusHandler,
		logger:                      logger.With("component", "http"),
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.POST("/returns", s.InitiateReturn)
	api.GET("/returns", s.ListReturns)
	api.GET("/returns/:id", s.GetReturn)
	api.POST("/returns/:id/approve", s.ApproveReturn)
	api.POST("/returns/:id/reject", s.RejectReturn)
	api.POST("/returns/:id/refund", s.ProcessRefund)

	api.POST("/deliveries/quotes", s.RequestDeliveryQuote)
	api.GET("/deliveries/quotes/active", s.ListActiveQuotes)
	api.POST("/deliveries", s.ConfirmDelivery)
	api.GET("/deliveries", s.ListDeliveries)
	api.POST("/deliveries/:id/cancel", s.CancelDelivery)
	api.GET("/orders/:orderID/delivery", s.GetDeliveryStatus)

	api.POST("/stores/:id/sync", s.TriggerSync)
	api.GET("/stores/:id/sync", s.GetSyncStatus)

	webhooks := e.Group("/webhooks/courier")
	webhooks.POST("/returns", s.ReturnStatusWebhook)
	webhooks.POST("/deliveries", s.DeliveryStatusWebhook)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// errorResponse is the JSON body returned on any failed request.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// fail maps a domain error onto an HTTP status and writes the error body.
func (s *Server) fail(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidState):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrWindowExpired):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrUpstreamFailure):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", ctx.Path(), "error", err)
	}
	return ctx.JSON(status, errorResponse{Code: status, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: message})
}

// pathUUID parses a UUID path parameter.
func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}
