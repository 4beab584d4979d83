package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// RequestDeliveryQuoteCommandHandler prices a delivery through the courier
// and stores the resulting quote. Quotes stay Active until accepted or
// expired; the expiry deadline comes from the provider.
type RequestDeliveryQuoteCommandHandler struct {
	uowFactory       DeliveryUoWFactory
	courier          ports.CourierGateway
	warehouseAddress string
}

// NewRequestDeliveryQuoteCommandHandler creates a handler for quote requests.
func NewRequestDeliveryQuoteCommandHandler(
	uowFactory DeliveryUoWFactory,
	courier ports.CourierGateway,
	warehouseAddress string,
) RequestDeliveryQuoteCommandHandler {
	return RequestDeliveryQuoteCommandHandler{
		uowFactory:       uowFactory,
		courier:          courier,
		warehouseAddress: warehouseAddress,
	}
}

// Handle processes the quote request and returns the stored quote's id.
func (h *RequestDeliveryQuoteCommandHandler) Handle(ctx context.Context, cmd RequestDeliveryQuoteCommand) (kernel.UUID, error) {
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

	dropoff := ord.ShippingAddress()
	if cmd.DropoffOverride() != "" {
		dropoff = cmd.DropoffOverride()
	}

	courierQuote, err := h.courier.Quote(ctx, ports.CourierQuoteRequest{
		PickupAddress:  h.warehouseAddress,
		DropoffAddress: dropoff,
		ItemCount:      cmd.ItemCount(),
	})
	if err != nil {
		return kernel.UUID{}, err
	}

	quote, err := delivery.NewQuote(
		kernel.NewUUID(),
		ord.ID(),
		courierQuote.Price,
		courierQuote.ETAMinutes,
		courierQuote.ExpiresAt,
		time.Now(),
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.QuoteRepository().Add(ctx, quote); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return quote.ID(), nil
}
