package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/notification"
)

// NotificationLogRepository persists notification log entries.
// The log is append-only; entries are never updated or deleted.
type NotificationLogRepository interface {
	Add(ctx context.Context, entry *notification.LogEntry) error
}
