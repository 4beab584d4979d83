// Package notificationrepo persists the append-only notification log.
package notificationrepo

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationLogDTO represents the database structure for notification log rows.
type NotificationLogDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Recipient    string
	Channel      string
	Template     string
	Payload      string
	State        string
	ProviderID   string `gorm:"column:provider_id"`
	ErrorMessage string
	CreatedAt    time.Time `gorm:"index"`
}

// TableName specifies the database table name for notification log rows.
func (NotificationLogDTO) TableName() string {
	return "notification_log"
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormNotificationLogRepository implements NotificationLogRepository using GORM.
type GormNotificationLogRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormNotificationLogRepository creates a new GORM notification log repository.
func NewGormNotificationLogRepository(db *gorm.DB, tracker aggregateTracker) *GormNotificationLogRepository {
	return &GormNotificationLogRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a notification log entry. Entries are never updated.
func (r *GormNotificationLogRepository) Add(ctx context.Context, entry *notification.LogEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := NotificationLogDTO{
		ID:           entry.ID().Bytes(),
		Recipient:    entry.Recipient(),
		Channel:      string(entry.Channel()),
		Template:     entry.Template(),
		Payload:      entry.Payload(),
		State:        string(entry.State()),
		ProviderID:   entry.ProviderID(),
		ErrorMessage: entry.ErrorMessage(),
		CreatedAt:    entry.CreatedAt(),
	}

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(entry.ID(), entry)
	return nil
}
