package notifications

import (
	"context"
	"time"

	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// LogUnitOfWork is the transaction scope the notifier needs to append log
// entries. Notification writes never join the caller's transaction.
type LogUnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	NotificationLogRepository() ports.NotificationLogRepository
}

// LogUnitOfWorkFactory creates LogUnitOfWork instances.
type LogUnitOfWorkFactory interface {
	Create() LogUnitOfWork
}

// LogNotifier sends customer and merchant notifications and records every
// attempt in the notification log. Customer sends are best-effort: resolver
// and provider failures are logged and swallowed. Merchant sends propagate
// the provider error.
type LogNotifier struct {
	uowFactory LogUnitOfWorkFactory
	resolver   ContactResolver
	merchant   Contact
	senders    map[notification.Channel]ports.NotificationSender
	logger     *slog.Logger
}

// NewLogNotifier creates a LogNotifier. At least one sender is required; the
// merchant contact must carry an email address.
func NewLogNotifier(
	uowFactory LogUnitOfWorkFactory,
	resolver ContactResolver,
	merchant Contact,
	logger *slog.Logger,
	senders ...ports.NotificationSender,
) (*LogNotifier, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	if resolver == nil {
		return nil, errs.NewValueIsRequiredError("resolver")
	}
	if merchant.Email == "" {
		return nil, errs.NewValueIsRequiredError("merchant.Email")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	if len(senders) == 0 {
		return nil, errs.NewValueIsRequiredError("senders")
	}

	byChannel := make(map[notification.Channel]ports.NotificationSender, len(senders))
	for _, sender := range senders {
		if err := sender.Channel().Validate(); err != nil {
			return nil, err
		}
		byChannel[sender.Channel()] = sender
	}

	return &LogNotifier{
		uowFactory: uowFactory,
		resolver:   resolver,
		merchant:   merchant,
		senders:    byChannel,
		logger:     logger.With("component", "notifier"),
	}, nil
}

var _ ports.Notifier = (*LogNotifier)(nil)

// NotifyCustomer sends to every channel the customer has an address for.
// Never returns an error; failures end up in the log only.
func (n *LogNotifier) NotifyCustomer(ctx context.Context, customerID kernel.UUID, template, payload string) {
	contact, err := n.resolver.ResolveCustomer(ctx, customerID)
	if err != nil {
		n.logger.Warn("customer contact lookup failed",
			"customer_id", customerID.String(), "template", template, "error", err)
		return
	}

	if sender, ok := n.senders[notification.ChannelEmail]; ok && contact.Email != "" {
		n.sendAndLog(ctx, sender, contact.Email, template, payload)
	}
	if sender, ok := n.senders[notification.ChannelSMS]; ok && contact.Phone != "" {
		n.sendAndLog(ctx, sender, contact.Phone, template, payload)
	}
}

// NotifyMerchant sends an email to the merchant contact. The provider error
// is propagated after the attempt is logged.
func (n *LogNotifier) NotifyMerchant(ctx context.Context, template, payload string) error {
	sender, ok := n.senders[notification.ChannelEmail]
	if !ok {
		return errs.NewValueIsRequiredError("email sender")
	}
	return n.sendAndLog(ctx, sender, n.merchant.Email, template, payload)
}

func (n *LogNotifier) sendAndLog(ctx context.Context, sender ports.NotificationSender, recipient, template, payload string) error {
	providerID, sendErr := sender.Send(ctx, recipient, template, payload)

	var entry *notification.LogEntry
	var entryErr error
	now := time.Now().UTC()
	if sendErr != nil {
		n.logger.Warn("notification send failed",
			"channel", string(sender.Channel()), "template", template, "error", sendErr)
		entry, entryErr = notification.NewFailedEntry(kernel.NewUUID(), recipient, sender.Channel(), template, payload, sendErr.Error(), now)
	} else {
		entry, entryErr = notification.NewSentEntry(kernel.NewUUID(), recipient, sender.Channel(), template, payload, providerID, now)
	}
	if entryErr != nil {
		n.logger.Error("notification log entry invalid", "template", template, "error", entryErr)
		return sendErr
	}

	n.appendLog(ctx, entry)
	return sendErr
}

func (n *LogNotifier) appendLog(ctx context.Context, entry *notification.LogEntry) {
	uow := n.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		n.logger.Error("notification log begin failed", "error", err)
		return
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.NotificationLogRepository().Add(ctx, entry); err != nil {
		n.logger.Error("notification log append failed", "error", err)
		return
	}
	if err := uow.Commit(ctx); err != nil {
		n.logger.Error("notification log commit failed", "error", err)
	}
}
