package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// InitiateReturnCommandHandler opens a return for a delivered order.
//
// Business rules:
//   - The order must exist and be inside the return window
//   - The provisional refund amount is the order total
//   - The customer notification is best-effort; the merchant notification
//     fails the command so no return goes unseen by the operator
type InitiateReturnCommandHandler struct {
	uowFactory ReturnUoWFactory
	notifier   ports.Notifier
}

// NewInitiateReturnCommandHandler creates a handler for return initiation.
func NewInitiateReturnCommandHandler(uowFactory ReturnUoWFactory, notifier ports.Notifier) InitiateReturnCommandHandler {
	return InitiateReturnCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the return initiation command and returns the created
// return's id.
func (h *InitiateReturnCommandHandler) Handle(ctx context.Context, cmd InitiateReturnCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ord, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return kernel.UUID{}, err
	}

	now := time.Now()
	if !ord.WithinReturnWindow(now) {
		return kernel.UUID{}, errs.NewWindowExpiredError("return window")
	}

	ret, err := returns.NewReturn(
		kernel.NewUUID(),
		ord.ID(),
		ord.CustomerID(),
		cmd.Reason(),
		cmd.ItemIDs(),
		cmd.Comment(),
		ord.Total(),
		now,
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.ReturnRepository().Add(ctx, ret); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	payload := fmt.Sprintf(`{"returnId":%q,"orderId":%q}`, ret.ID().String(), ord.ID().String())
	h.notifier.NotifyCustomer(ctx, ord.CustomerID(), "return_initiated", payload)

	if err = h.notifier.NotifyMerchant(ctx, "return_initiated", payload); err != nil {
		return kernel.UUID{}, err
	}

	return ret.ID(), nil
}
