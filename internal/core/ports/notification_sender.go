package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
)

// NotificationSender is the outbound port for a single notification provider
// (one implementation per channel).
type NotificationSender interface {
	// Send delivers a templated message and returns the provider's message id.
	Send(ctx context.Context, recipient, template, payload string) (providerID string, err error)

	// Channel reports which channel this sender delivers on.
	Channel() notification.Channel
}

// Notifier sends customer and merchant notifications and records every
// attempt in the notification log.
//
// NotifyCustomer is best-effort: provider failures are logged, never
// propagated. NotifyMerchant propagates the provider error for flows that
// must not proceed silently.
type Notifier interface {
	NotifyCustomer(ctx context.Context, customerID kernel.UUID, template, payload string)

	NotifyMerchant(ctx context.Context, template, payload string) error
}
