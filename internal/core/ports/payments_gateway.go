package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// PaymentsGateway is the outbound port for the payment provider.
type PaymentsGateway interface {
	// Refund refunds the given amount against an order's payment reference
	// and returns the provider's refund identifier.
	Refund(ctx context.Context, paymentRef string, amount kernel.Money) (string, error)
}
