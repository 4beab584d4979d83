// Package payments implements the PaymentsGateway port against the payment
// provider's REST API. The provider authenticates with a static API key.
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const providerName = "payments"

// Config holds the payment provider connection settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client is an HTTP PaymentsGateway implementation.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     *slog.Logger
}

// NewClient creates a payments Client. BaseURL and APIKey are required;
// Timeout defaults to 10 seconds.
func NewClient(config Config, logger *slog.Logger) (*Client, error) {
	if config.BaseURL == "" {
		return nil, errs.NewValueIsRequiredError("config.BaseURL")
	}
	if config.APIKey == "" {
		return nil, errs.NewValueIsRequiredError("config.APIKey")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &Client{
		httpClient: &http.Client{Timeout: config.Timeout},
		config:     config,
		logger:     logger.With("component", "payments_gateway"),
	}, nil
}

var _ ports.PaymentsGateway = (*Client)(nil)

type refundRequest struct {
	PaymentRef  string `json:"payment_ref"`
	AmountMinor int64  `json:"amount_minor"`
}

type refundResponse struct {
	RefundID string `json:"refund_id"`
	Status   string `json:"status"`
}

// Refund refunds the given amount against a payment reference and returns the
// provider's refund identifier.
func (c *Client) Refund(ctx context.Context, paymentRef string, amount kernel.Money) (string, error) {
	if paymentRef == "" {
		return "", errs.NewValueIsRequiredError("paymentRef")
	}

	payload, err := json.Marshal(refundRequest{
		PaymentRef:  paymentRef,
		AmountMinor: amount.Amount(),
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/v1/refunds", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errs.NewUpstreamFailureErrorWithCause(providerName, "refund "+paymentRef, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", errs.NewUpstreamFailureErrorWithCause(providerName, "refund "+paymentRef, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errs.NewUpstreamFailureError(providerName, fmt.Sprintf("refund %s: status %d: %s", paymentRef, resp.StatusCode, string(body)))
	}

	var rr refundResponse
	if err := json.Unmarshal(body, &rr); err != nil {
		return "", errs.NewUpstreamFailureErrorWithCause(providerName, string(body), err)
	}
	if rr.RefundID == "" {
		return "", errs.NewUpstreamFailureError(providerName, "refund response: empty refund_id")
	}

	c.logger.Info("refund issued", "payment_ref", paymentRef, "refund_id", rr.RefundID, "amount", amount.Amount())
	return rr.RefundID, nil
}
