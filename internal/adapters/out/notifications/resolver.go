package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Contact is a customer's reachable addresses. Either field may be empty;
// senders are only invoked for channels with an address.
type Contact struct {
	Email string
	Phone string
}

// ContactResolver resolves a customer's contact addresses.
type ContactResolver interface {
	ResolveCustomer(ctx context.Context, customerID kernel.UUID) (Contact, error)
}

// HTTPContactResolver resolves contacts from the customer directory service.
type HTTPContactResolver struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewHTTPContactResolver creates a resolver against the customer directory.
func NewHTTPContactResolver(baseURL, apiKey string, timeout time.Duration) (*HTTPContactResolver, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if apiKey == "" {
		return nil, errs.NewValueIsRequiredError("apiKey")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &HTTPContactResolver{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}, nil
}

var _ ContactResolver = (*HTTPContactResolver)(nil)

type contactResponse struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ResolveCustomer looks up a customer's contact addresses by id.
func (r *HTTPContactResolver) ResolveCustomer(ctx context.Context, customerID kernel.UUID) (Contact, error) {
	if err := customerID.Validate(); err != nil {
		return Contact{}, err
	}

	url := r.baseURL + "/v1/customers/" + customerID.String() + "/contact"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Contact{}, err
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return Contact{}, errs.NewUpstreamFailureErrorWithCause(providerName, "contact lookup", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Contact{}, errs.NewUpstreamFailureErrorWithCause(providerName, "contact lookup", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return Contact{}, errs.NewObjectNotFoundError("customer", customerID)
	}
	if resp.StatusCode != http.StatusOK {
		return Contact{}, errs.NewUpstreamFailureError(providerName, fmt.Sprintf("contact lookup: status %d: %s", resp.StatusCode, string(body)))
	}

	var cr contactResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return Contact{}, errs.NewUpstreamFailureErrorWithCause(providerName, string(body), err)
	}
	return Contact{Email: cr.Email, Phone: cr.Phone}, nil
}
