package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/ports"
)

// ProcessRefundCommandHandler refunds a received return through the payment
// provider and records the refund.
//
// Business rules:
//   - The return must be in Received status before the provider is called
//   - The refund record is immutable and written in the same transaction as
//     the status change
//   - The customer notification is best-effort
type ProcessRefundCommandHandler struct {
	uowFactory ReturnUoWFactory
	payments   ports.PaymentsGateway
	notifier   ports.Notifier
}

// NewProcessRefundCommandHandler creates a handler for refund processing.
func NewProcessRefundCommandHandler(
	uowFactory ReturnUoWFactory,
	payments ports.PaymentsGateway,
	notifier ports.Notifier,
) ProcessRefundCommandHandler {
	return ProcessRefundCommandHandler{
		uowFactory: uowFactory,
		payments:   payments,
		notifier:   notifier,
	}
}

// Handle processes the refund command.
func (h *ProcessRefundCommandHandler) Handle(ctx context.Context, cmd ProcessRefundCommand) error {
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

	// reject the wrong status before touching the payment provider
	if _, err = r.Status().Refund(); err != nil {
		return err
	}

	ord, err := uow.OrderRepository().Get(ctx, r.OrderID())
	if err != nil {
		return err
	}

	providerRefundID, err := h.payments.Refund(ctx, ord.PaymentRef(), r.Amount())
	if err != nil {
		return err
	}

	now := time.Now()
	if err = r.MarkRefunded(now); err != nil {
		return err
	}

	if err = ord.MarkRefunded(); err != nil {
		return err
	}

	record, err := returns.NewRefundRecord(
		kernel.NewUUID(), r.ID(), ord.ID(), r.Amount(), providerRefundID, now,
	)
	if err != nil {
		return err
	}

	if err = uow.ReturnRepository().Update(ctx, r); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
	}

	if err = uow.RefundRecordRepository().Add(ctx, record); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	payload := fmt.Sprintf(`{"returnId":%q,"refundId":%q,"amount":%d}`,
		r.ID().String(), providerRefundID, r.Amount().Amount())
	h.notifier.NotifyCustomer(ctx, r.CustomerID(), "refund_processed", payload)

	return nil
}
