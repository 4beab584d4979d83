// Package courier implements the CourierGateway port against the courier
// provider's REST API. Calls authenticate with short-lived bearer tokens
// obtained via the client-credentials flow; the token is cached and refreshed
// lazily behind a single-flight guard so concurrent callers never stampede
// the token endpoint.
package courier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"log/slog"

	"golang.org/x/sync/singleflight"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const (
	providerName = "courier"

	// expiryLeeway refreshes the token slightly before the provider expires it
	// so in-flight requests never carry a token that dies mid-call.
	expiryLeeway = 30 * time.Second

	maxErrorBodyBytes = 2048
)

// Config holds the courier provider connection settings.
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// Client is an HTTP CourierGateway implementation.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     *slog.Logger

	tokenGroup singleflight.Group
	tokenMu    sync.RWMutex
	token      string
	tokenExp   time.Time
}

// NewClient creates a courier Client. BaseURL, ClientID and ClientSecret are
// required; Timeout defaults to 10 seconds.
func NewClient(config Config, logger *slog.Logger) (*Client, error) {
	if config.BaseURL == "" {
		return nil, errs.NewValueIsRequiredError("config.BaseURL")
	}
	if config.ClientID == "" {
		return nil, errs.NewValueIsRequiredError("config.ClientID")
	}
	if config.ClientSecret == "" {
		return nil, errs.NewValueIsRequiredError("config.ClientSecret")
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
		logger:     logger.With("component", "courier_gateway"),
	}, nil
}

var _ ports.CourierGateway = (*Client)(nil)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type quoteRequest struct {
	PickupAddress  string `json:"pickup_address"`
	DropoffAddress string `json:"dropoff_address"`
	ItemCount      int    `json:"item_count"`
}

type quoteResponse struct {
	QuoteID    string    `json:"quote_id"`
	PriceMinor int64     `json:"price_minor"`
	ETAMinutes int       `json:"eta_minutes"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type jobRequest struct {
	QuoteID        string `json:"quote_id,omitempty"`
	PickupAddress  string `json:"pickup_address"`
	DropoffAddress string `json:"dropoff_address"`
	ContactName    string `json:"contact_name"`
	ContactPhone   string `json:"contact_phone"`
	Reference      string `json:"reference"`
}

type jobResponse struct {
	JobID    string    `json:"job_id"`
	PickupAt time.Time `json:"pickup_at"`
}

type jobStatusResponse struct {
	Status string `json:"status"`
	Driver struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	} `json:"driver"`
	Location string     `json:"location"`
	ETA      *time.Time `json:"eta"`
}

// Quote requests a priced offer for a prospective job.
func (c *Client) Quote(ctx context.Context, req ports.CourierQuoteRequest) (ports.CourierQuote, error) {
	body, err := c.doJSON(ctx, http.MethodPost, "/v1/quotes", quoteRequest{
		PickupAddress:  req.PickupAddress,
		DropoffAddress: req.DropoffAddress,
		ItemCount:      req.ItemCount,
	})
	if err != nil {
		return ports.CourierQuote{}, err
	}

	var resp quoteResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ports.CourierQuote{}, errs.NewUpstreamFailureErrorWithCause(providerName, string(body), err)
	}

	price, err := kernel.NewMoney(resp.PriceMinor)
	if err != nil {
		return ports.CourierQuote{}, errs.NewUpstreamFailureErrorWithCause(providerName, string(body), err)
	}

	return ports.CourierQuote{
		ProviderQuoteID: resp.QuoteID,
		Price:           price,
		ETAMinutes:      resp.ETAMinutes,
		ExpiresAt:       resp.ExpiresAt,
	}, nil
}

// CreateJob books a job at the provider. The raw response body is returned
// verbatim for the audit record.
func (c *Client) CreateJob(ctx context.Context, req ports.CourierJobRequest) (ports.CourierJob, error) {
	body, err := c.doJSON(ctx, http.MethodPost, "/v1/jobs", jobRequest{
		QuoteID:        req.ProviderQuoteID,
		PickupAddress:  req.PickupAddress,
		DropoffAddress: req.DropoffAddress,
		ContactName:    req.ContactName,
		ContactPhone:   req.ContactPhone,
		Reference:      req.Reference,
	})
	if err != nil {
		return ports.CourierJob{}, err
	}

	var resp jobResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ports.CourierJob{}, errs.NewUpstreamFailureErrorWithCause(providerName, string(body), err)
	}

	return ports.CourierJob{
		JobID:       resp.JobID,
		PickupAt:    resp.PickupAt,
		RawResponse: string(body),
	}, nil
}

// GetJobStatus pulls the current status of a job from the provider.
func (c *Client) GetJobStatus(ctx context.Context, jobID string) (ports.CourierJobStatus, error) {
	if jobID == "" {
		return ports.CourierJobStatus{}, errs.NewValueIsRequiredError("jobID")
	}

	body, err := c.doJSON(ctx, http.MethodGet, "/v1/jobs/"+jobID, nil)
	if err != nil {
		return ports.CourierJobStatus{}, err
	}

	var resp jobStatusResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ports.CourierJobStatus{}, errs.NewUpstreamFailureErrorWithCause(providerName, string(body), err)
	}

	return ports.CourierJobStatus{
		Status:      resp.Status,
		DriverName:  resp.Driver.Name,
		DriverPhone: resp.Driver.Phone,
		Location:    resp.Location,
		ETA:         resp.ETA,
	}, nil
}

// CancelJob cancels a job at the provider.
func (c *Client) CancelJob(ctx context.Context, jobID string) error {
	if jobID == "" {
		return errs.NewValueIsRequiredError("jobID")
	}

	_, err := c.doJSON(ctx, http.MethodPost, "/v1/jobs/"+jobID+"/cancel", nil)
	return err
}

// doJSON performs an authorized request against the provider. A 401 drops the
// cached token and retries once with a fresh one.
func (c *Client) doJSON(ctx context.Context, method, path string, payload any) ([]byte, error) {
	body, status, err := c.attempt(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		c.invalidateToken()
		c.logger.Debug("retrying with fresh token", "path", path)
		body, status, err = c.attempt(ctx, method, path, payload)
		if err != nil {
			return nil, err
		}
	}

	if status < 200 || status >= 300 {
		return nil, errs.NewUpstreamFailureError(providerName, fmt.Sprintf("%s %s: status %d: %s", method, path, status, string(body)))
	}
	return body, nil
}

func (c *Client) attempt(ctx context.Context, method, path string, payload any) ([]byte, int, error) {
	token, err := c.bearerToken(ctx)
	if err != nil {
		return nil, 0, err
	}

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, err
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reqBody)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, errs.NewUpstreamFailureErrorWithCause(providerName, method+" "+path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, 0, errs.NewUpstreamFailureErrorWithCause(providerName, method+" "+path, err)
	}
	return body, resp.StatusCode, nil
}

// bearerToken returns the cached token or fetches a new one. Concurrent
// refreshes collapse into a single token request.
func (c *Client) bearerToken(ctx context.Context) (string, error) {
	c.tokenMu.RLock()
	token, exp := c.token, c.tokenExp
	c.tokenMu.RUnlock()
	if token != "" && time.Now().Before(exp.Add(-expiryLeeway)) {
		return token, nil
	}

	fresh, err, _ := c.tokenGroup.Do("token", func() (any, error) {
		c.tokenMu.RLock()
		token, exp := c.token, c.tokenExp
		c.tokenMu.RUnlock()
		if token != "" && time.Now().Before(exp.Add(-expiryLeeway)) {
			return token, nil
		}
		return c.fetchToken(ctx)
	})
	if err != nil {
		return "", err
	}
	return fresh.(string), nil
}

func (c *Client) fetchToken(ctx context.Context) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"grant_type":    "client_credentials",
		"client_id":     c.config.ClientID,
		"client_secret": c.config.ClientSecret,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/oauth/token", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errs.NewUpstreamFailureErrorWithCause(providerName, "token request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil {
		return "", errs.NewUpstreamFailureErrorWithCause(providerName, "token response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", errs.NewUpstreamFailureError(providerName, fmt.Sprintf("token request: status %d: %s", resp.StatusCode, string(body)))
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", errs.NewUpstreamFailureErrorWithCause(providerName, "token response", err)
	}
	if tr.AccessToken == "" {
		return "", errs.NewUpstreamFailureError(providerName, "token response: empty access_token")
	}

	c.tokenMu.Lock()
	c.token = tr.AccessToken
	c.tokenExp = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	c.tokenMu.Unlock()

	c.logger.Debug("courier token refreshed", "expires_in", tr.ExpiresIn)
	return tr.AccessToken, nil
}

func (c *Client) invalidateToken() {
	c.tokenMu.Lock()
	c.token = ""
	c.tokenExp = time.Time{}
	c.tokenMu.Unlock()
}
