package notification

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var ErrLogEntryIsNotConstructed = errors.New("log entry must be created via its constructor")

// Channel is the transport a notification went out on.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

func (c Channel) Validate() error {
	switch c {
	case ChannelEmail, ChannelSMS:
		return nil
	}
	return errs.NewValueIsInvalidError("channel")
}

// DeliveryState records whether the provider accepted the message.
type DeliveryState string

const (
	StateSent   DeliveryState = "sent"
	StateFailed DeliveryState = "failed"
)

// LogEntry is an append-only record of a notification attempt. Entries are
// written after the attempt and never updated.
type LogEntry struct {
	id           kernel.UUID
	recipient    string
	channel      Channel
	template     string
	payload      string
	state        DeliveryState
	providerID   string
	errorMessage string
	createdAt    time.Time

	isConstructed bool
}

// NewSentEntry records a successfully delivered notification.
func NewSentEntry(id kernel.UUID, recipient string, channel Channel, template, payload, providerID string, now time.Time) (*LogEntry, error) {
	return newEntry(id, recipient, channel, template, payload, StateSent, providerID, "", now)
}

// NewFailedEntry records a notification the provider rejected. Failures are
// logged and never retried by the caller.
func NewFailedEntry(id kernel.UUID, recipient string, channel Channel, template, payload, errorMessage string, now time.Time) (*LogEntry, error) {
	return newEntry(id, recipient, channel, template, payload, StateFailed, "", errorMessage, now)
}

func newEntry(id kernel.UUID, recipient string, channel Channel, template, payload string,
	state DeliveryState, providerID, errorMessage string, now time.Time) (*LogEntry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if recipient == "" {
		return nil, errs.NewValueIsRequiredError("recipient")
	}
	if err := channel.Validate(); err != nil {
		return nil, err
	}
	if template == "" {
		return nil, errs.NewValueIsRequiredError("template")
	}

	return &LogEntry{
		id:            id,
		recipient:     recipient,
		channel:       channel,
		template:      template,
		payload:       payload,
		state:         state,
		providerID:    providerID,
		errorMessage:  errorMessage,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreEntry reconstructs a LogEntry from persistence.
func RestoreEntry(id kernel.UUID, recipient string, channel Channel, template, payload string,
	state DeliveryState, providerID, errorMessage string, createdAt time.Time) *LogEntry {
	return &LogEntry{
		id:            id,
		recipient:     recipient,
		channel:       channel,
		template:      template,
		payload:       payload,
		state:         state,
		providerID:    providerID,
		errorMessage:  errorMessage,
		createdAt:     createdAt,
		isConstructed: true,
	}
}

func (e *LogEntry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrLogEntryIsNotConstructed
	}
	return nil
}

func (e *LogEntry) ID() kernel.UUID      { return e.id }
func (e *LogEntry) Recipient() string    { return e.recipient }
func (e *LogEntry) Channel() Channel     { return e.channel }
func (e *LogEntry) Template() string     { return e.template }
func (e *LogEntry) Payload() string      { return e.payload }
func (e *LogEntry) State() DeliveryState { return e.state }
func (e *LogEntry) ProviderID() string   { return e.providerID }
func (e *LogEntry) ErrorMessage() string { return e.errorMessage }
func (e *LogEntry) CreatedAt() time.Time { return e.createdAt }
func (e *LogEntry) IsSent() bool         { return e.state == StateSent }
