package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ConfirmDeliveryCommandHandler books a delivery against an accepted quote.
//
// Business rules:
//   - The quote must belong to the order, be Active and not expired
//   - The courier job is created before anything is persisted; a courier
//     failure leaves quote and order untouched
//   - The raw courier response is kept as an audit record
type ConfirmDeliveryCommandHandler struct {
	uowFactory       DeliveryUoWFactory
	courier          ports.CourierGateway
	notifier         ports.Notifier
	warehouseAddress string
}

// NewConfirmDeliveryCommandHandler creates a handler for delivery confirmation.
func NewConfirmDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	courier ports.CourierGateway,
	notifier ports.Notifier,
	warehouseAddress string,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory:       uowFactory,
		courier:          courier,
		notifier:         notifier,
		warehouseAddress: warehouseAddress,
	}
}

// Handle processes the delivery confirmation and returns the delivery's id.
func (h *ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) (kernel.UUID, error) {
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

	quote, err := uow.QuoteRepository().Get(ctx, cmd.QuoteID())
	if err != nil {
		return kernel.UUID{}, err
	}

	if !quote.OrderID().IsEqual(ord.ID()) {
		return kernel.UUID{}, errs.NewValueIsInvalidError("quoteId")
	}

	now := time.Now()
	if err = quote.Accept(now); err != nil {
		return kernel.UUID{}, err
	}

	job, err := h.courier.CreateJob(ctx, ports.CourierJobRequest{
		PickupAddress:  h.warehouseAddress,
		DropoffAddress: ord.ShippingAddress(),
		Reference:      ord.ID().String(),
	})
	if err != nil {
		return kernel.UUID{}, err
	}

	del, err := delivery.NewDelivery(
		kernel.NewUUID(), ord.ID(), quote.ID(), job.JobID, quote.Price(), now,
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = ord.ConfirmDelivery(del.ID()); err != nil {
		return kernel.UUID{}, err
	}

	record, err := delivery.NewJobRecord(
		kernel.NewUUID(), job.JobID, delivery.JobPurposeDelivery, job.RawResponse, now,
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.DeliveryRepository().Add(ctx, del); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.QuoteRepository().Update(ctx, quote); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.JobRecordRepository().Add(ctx, record); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	payload := fmt.Sprintf(`{"orderId":%q,"deliveryId":%q}`, ord.ID().String(), del.ID().String())
	h.notifier.NotifyCustomer(ctx, ord.CustomerID(), "delivery_confirmed", payload)

	return del.ID(), nil
}
