package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
)

type requestQuoteRequest struct {
	OrderID         string `json:"order_id"`
	DropoffOverride string `json:"dropoff_override"`
	ItemCount       int    `json:"item_count"`
}

type confirmDeliveryRequest struct {
	OrderID string `json:"order_id"`
	QuoteID string `json:"quote_id"`
}

type cancelDeliveryRequest struct {
	Reason string `json:"reason"`
}

type idResponse struct {
	ID string `json:"id"`
}

type deliverySummaryResponse struct {
	ID           string `json:"id"`
	OrderID      string `json:"order_id"`
	CourierJobID string `json:"courier_job_id"`
	Status       string `json:"status"`
	DriverName   string `json:"driver_name,omitempty"`
	PriceMinor   int64  `json:"price_minor"`
	CreatedAt    string `json:"created_at"`
}

type deliveryPageResponse struct {
	Items  []deliverySummaryResponse `json:"items"`
	Total  int64                     `json:"total"`
	Limit  int                       `json:"limit"`
	Offset int                       `json:"offset"`
}

type quoteSummaryResponse struct {
	ID         string `json:"id"`
	OrderID    string `json:"order_id"`
	PriceMinor int64  `json:"price_minor"`
	ETAMinutes int    `json:"eta_minutes"`
	ExpiresAt  string `json:"expires_at"`
	CreatedAt  string `json:"created_at"`
}

type quotePageResponse struct {
	Items  []quoteSummaryResponse `json:"items"`
	Total  int64                  `json:"total"`
	Limit  int                    `json:"limit"`
	Offset int                    `json:"offset"`
}

type deliveryStatusResponse struct {
	DeliveryID   string  `json:"delivery_id"`
	OrderID      string  `json:"order_id"`
	CourierJobID string  `json:"courier_job_id,omitempty"`
	Status       string  `json:"status"`
	DriverName   string  `json:"driver_name,omitempty"`
	DriverPhone  string  `json:"driver_phone,omitempty"`
	Location     string  `json:"location,omitempty"`
	ETA          *string `json:"eta"`
	PriceMinor   int64   `json:"price_minor"`
	CreatedAt    string  `json:"created_at"`
}

// RequestDeliveryQuote handles POST /api/v1/deliveries/quotes.
func (s *Server) RequestDeliveryQuote(ctx echo.Context) error {
	var req requestQuoteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRequestDeliveryQuoteCommand(orderID, req.DropoffOverride, req.ItemCount)
	if err != nil {
		return s.fail(ctx, err)
	}

	quoteID, err := s.requestDeliveryQuoteHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, idResponse{ID: quoteID.String()})
}

// ConfirmDelivery handles POST /api/v1/deliveries.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	var req confirmDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	quoteID, err := kernel.UUIDFromString(req.QuoteID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewConfirmDeliveryCommand(orderID, quoteID)
	if err != nil {
		return s.fail(ctx, err)
	}

	deliveryID, err := s.confirmDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, idResponse{ID: deliveryID.String()})
}

// CancelDelivery handles POST /api/v1/deliveries/:id/cancel.
func (s *Server) CancelDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}

	var req cancelDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCancelDeliveryCommand(deliveryID, req.Reason)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.cancelDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ListDeliveries handles GET /api/v1/deliveries.
func (s *Server) ListDeliveries(ctx echo.Context) error {
	limit, offset, err := pageParams(ctx)
	if err != nil {
		return badRequest(ctx, "limit and offset must be integers")
	}

	query, err := queries.NewListDeliveriesByStatusQuery(ctx.QueryParam("status"), limit, offset)
	if err != nil {
		return s.fail(ctx, err)
	}

	page, err := s.listDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	resp := deliveryPageResponse{
		Items:  make([]deliverySummaryResponse, len(page.Items)),
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	for i, item := range page.Items {
		resp.Items[i] = deliverySummaryResponse{
			ID:           item.ID.String(),
			OrderID:      item.OrderID.String(),
			CourierJobID: item.CourierJobID,
			Status:       item.Status,
			DriverName:   item.DriverName,
			PriceMinor:   item.Price,
			CreatedAt:    formatTime(item.CreatedAt),
		}
	}
	return ctx.JSON(http.StatusOK, resp)
}

// ListActiveQuotes handles GET /api/v1/deliveries/quotes/active.
func (s *Server) ListActiveQuotes(ctx echo.Context) error {
	limit, offset, err := pageParams(ctx)
	if err != nil {
		return badRequest(ctx, "limit and offset must be integers")
	}

	query, err := queries.NewListActiveQuotesQuery(limit, offset)
	if err != nil {
		return s.fail(ctx, err)
	}

	page, err := s.listActiveQuotesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	resp := quotePageResponse{
		Items:  make([]quoteSummaryResponse, len(page.Items)),
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	for i, item := range page.Items {
		resp.Items[i] = quoteSummaryResponse{
			ID:         item.ID.String(),
			OrderID:    item.OrderID.String(),
			PriceMinor: item.Price,
			ETAMinutes: item.ETAMinutes,
			ExpiresAt:  formatTime(item.ExpiresAt),
			CreatedAt:  formatTime(item.CreatedAt),
		}
	}
	return ctx.JSON(http.StatusOK, resp)
}

// GetDeliveryStatus handles GET /api/v1/orders/:orderID/delivery.
func (s *Server) GetDeliveryStatus(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetDeliveryStatusQuery(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	detail, err := s.getDeliveryStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryStatusResponse{
		DeliveryID:   detail.DeliveryID.String(),
		OrderID:      detail.OrderID.String(),
		CourierJobID: detail.CourierJobID,
		Status:       detail.Status,
		DriverName:   detail.DriverName,
		DriverPhone:  detail.DriverPhone,
		Location:     detail.Location,
		ETA:          formatTimePtr(detail.ETA),
		PriceMinor:   detail.Price,
		CreatedAt:    formatTime(detail.CreatedAt),
	})
}
