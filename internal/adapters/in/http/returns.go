package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
)

type initiateReturnRequest struct {
	OrderID string   `json:"order_id"`
	Reason  string   `json:"reason"`
	ItemIDs []string `json:"item_ids"`
	Comment string   `json:"comment"`
}

type approveReturnRequest struct {
	AmountMinor *int64 `json:"amount_minor"`
}

type rejectReturnRequest struct {
	Reason string `json:"reason"`
}

type returnSummaryResponse struct {
	ID          string `json:"id"`
	OrderID     string `json:"order_id"`
	CustomerID  string `json:"customer_id"`
	Reason      string `json:"reason"`
	Status      string `json:"status"`
	AmountMinor int64  `json:"amount_minor"`
	RequestedAt string `json:"requested_at"`
}

type returnPageResponse struct {
	Items  []returnSummaryResponse `json:"items"`
	Total  int64                   `json:"total"`
	Limit  int                     `json:"limit"`
	Offset int                     `json:"offset"`
}

type returnDetailResponse struct {
	ID           string  `json:"id"`
	OrderID      string  `json:"order_id"`
	CustomerID   string  `json:"customer_id"`
	Reason       string  `json:"reason"`
	Comments     string  `json:"comments"`
	Status       string  `json:"status"`
	AmountMinor  int64   `json:"amount_minor"`
	CourierJobID *string `json:"courier_job_id"`
	RequestedAt  string  `json:"requested_at"`
	ApprovedAt   *string `json:"approved_at"`
	RejectedAt   *string `json:"rejected_at"`
	RejectReason string  `json:"reject_reason,omitempty"`
	PickupAt     *string `json:"pickup_at"`
	RefundedAt   *string `json:"refunded_at"`
}

// InitiateReturn handles POST /api/v1/returns.
func (s *Server) InitiateReturn(ctx echo.Context) error {
	var req initiateReturnRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewInitiateReturnCommand(orderID, req.Reason, req.ItemIDs, req.Comment)
	if err != nil {
		return s.fail(ctx, err)
	}

	returnID, err := s.initiateReturnHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, idResponse{ID: returnID.String()})
}

// ApproveReturn handles POST /api/v1/returns/:id/approve.
func (s *Server) ApproveReturn(ctx echo.Context) error {
	returnID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}

	var req approveReturnRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	var amount *kernel.Money
	if req.AmountMinor != nil {
		m, err := kernel.NewMoney(*req.AmountMinor)
		if err != nil {
			return s.fail(ctx, err)
		}
		amount = &m
	}

	cmd, err := commands.NewApproveReturnCommand(returnID, amount)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.approveReturnHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RejectReturn handles POST /api/v1/returns/:id/reject.
func (s *Server) RejectReturn(ctx echo.Context) error {
	returnID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}

	var req rejectReturnRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewRejectReturnCommand(returnID, req.Reason)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.rejectReturnHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ProcessRefund handles POST /api/v1/returns/:id/refund.
func (s *Server) ProcessRefund(ctx echo.Context) error {
	returnID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewProcessRefundCommand(returnID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.processRefundHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ListReturns handles GET /api/v1/returns.
func (s *Server) ListReturns(ctx echo.Context) error {
	limit, offset, err := pageParams(ctx)
	if err != nil {
		return badRequest(ctx, "limit and offset must be integers")
	}

	query, err := queries.NewListReturnsByStatusQuery(ctx.QueryParam("status"), limit, offset)
	if err != nil {
		return s.fail(ctx, err)
	}

	page, err := s.listReturnsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	resp := returnPageResponse{
		Items:  make([]returnSummaryResponse, len(page.Items)),
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	for i, item := range page.Items {
		resp.Items[i] = returnSummaryResponse{
			ID:          item.ID.String(),
			OrderID:     item.OrderID.String(),
			CustomerID:  item.CustomerID.String(),
			Reason:      item.Reason,
			Status:      item.Status,
			AmountMinor: item.Amount,
			RequestedAt: formatTime(item.RequestedAt),
		}
	}
	return ctx.JSON(http.StatusOK, resp)
}

// GetReturn handles GET /api/v1/returns/:id.
func (s *Server) GetReturn(ctx echo.Context) error {
	returnID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetReturnQuery(returnID)
	if err != nil {
		return s.fail(ctx, err)
	}

	detail, err := s.getReturnHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, returnDetailResponse{
		ID:           detail.ID.String(),
		OrderID:      detail.OrderID.String(),
		CustomerID:   detail.CustomerID.String(),
		Reason:       detail.Reason,
		Comments:     detail.Comments,
		Status:       detail.Status,
		AmountMinor:  detail.Amount,
		CourierJobID: detail.CourierJobID,
		RequestedAt:  formatTime(detail.RequestedAt),
		ApprovedAt:   formatTimePtr(detail.ApprovedAt),
		RejectedAt:   formatTimePtr(detail.RejectedAt),
		RejectReason: detail.RejectReason,
		PickupAt:     formatTimePtr(detail.PickupAt),
		RefundedAt:   formatTimePtr(detail.RefundedAt),
	})
}

// pageParams reads limit and offset query params, leaving validation and
// clamping to the query constructors.
func pageParams(ctx echo.Context) (limit, offset int, err error) {
	if raw := ctx.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, err
		}
	}
	if raw := ctx.QueryParam("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, err
		}
	}
	return limit, offset, nil
}
