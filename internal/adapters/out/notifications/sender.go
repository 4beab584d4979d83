// Package notifications implements the NotificationSender and Notifier ports.
// Messages go out through a transactional messaging provider's REST API, one
// sender per channel, and every attempt is recorded in the notification log.
package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const providerName = "notifications"

// Config holds the messaging provider connection settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// HTTPSender delivers messages on a single channel through the messaging
// provider.
type HTTPSender struct {
	httpClient *http.Client
	config     Config
	channel    notification.Channel
}

// NewEmailSender creates a sender for the email channel.
func NewEmailSender(config Config) (*HTTPSender, error) {
	return newSender(config, notification.ChannelEmail)
}

// NewSMSSender creates a sender for the SMS channel.
func NewSMSSender(config Config) (*HTTPSender, error) {
	return newSender(config, notification.ChannelSMS)
}

func newSender(config Config, channel notification.Channel) (*HTTPSender, error) {
	if config.BaseURL == "" {
		return nil, errs.NewValueIsRequiredError("config.BaseURL")
	}
	if config.APIKey == "" {
		return nil, errs.NewValueIsRequiredError("config.APIKey")
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &HTTPSender{
		httpClient: &http.Client{Timeout: config.Timeout},
		config:     config,
		channel:    channel,
	}, nil
}

var _ ports.NotificationSender = (*HTTPSender)(nil)

type sendRequest struct {
	Channel   string `json:"channel"`
	Recipient string `json:"recipient"`
	Template  string `json:"template"`
	Payload   string `json:"payload"`
}

type sendResponse struct {
	MessageID string `json:"message_id"`
}

// Send delivers a templated message and returns the provider's message id.
func (s *HTTPSender) Send(ctx context.Context, recipient, template, payload string) (string, error) {
	if recipient == "" {
		return "", errs.NewValueIsRequiredError("recipient")
	}
	if template == "" {
		return "", errs.NewValueIsRequiredError("template")
	}

	encoded, err := json.Marshal(sendRequest{
		Channel:   string(s.channel),
		Recipient: recipient,
		Template:  template,
		Payload:   payload,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.BaseURL+"/v1/messages", bytes.NewReader(encoded))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", errs.NewUpstreamFailureErrorWithCause(providerName, string(s.channel)+" send", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", errs.NewUpstreamFailureErrorWithCause(providerName, string(s.channel)+" send", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errs.NewUpstreamFailureError(providerName, fmt.Sprintf("%s send: status %d: %s", s.channel, resp.StatusCode, string(body)))
	}

	var sr sendResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return "", errs.NewUpstreamFailureErrorWithCause(providerName, string(body), err)
	}
	if sr.MessageID == "" {
		return "", errs.NewUpstreamFailureError(providerName, "send response: empty message_id")
	}
	return sr.MessageID, nil
}

// Channel reports which channel this sender delivers on.
func (s *HTTPSender) Channel() notification.Channel {
	return s.channel
}
