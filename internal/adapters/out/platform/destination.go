package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const destinationProviderName = "destination"

// HTTPProductDestination writes products to the order-management backend.
type HTTPProductDestination struct {
	httpClient *http.Client
}

// NewHTTPProductDestination creates a product destination. Timeout defaults
// to 30 seconds.
func NewHTTPProductDestination(timeout time.Duration) *HTTPProductDestination {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPProductDestination{httpClient: &http.Client{Timeout: timeout}}
}

var _ ports.ProductDestination = (*HTTPProductDestination)(nil)

type destinationProductDTO struct {
	Handle      string                  `json:"handle"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Vendor      string                  `json:"vendor"`
	Category    string                  `json:"category"`
	Tags        []string                `json:"tags"`
	Published   bool                    `json:"published"`
	Images      []string                `json:"images"`
	Options     []destinationOptionDTO  `json:"options"`
	Variants    []destinationVariantDTO `json:"variants"`
}

type destinationOptionDTO struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type destinationVariantDTO struct {
	SKU            string   `json:"sku"`
	Name           string   `json:"name"`
	PriceMinor     int64    `json:"price_minor"`
	Options        []string `json:"options"`
	TrackInventory bool     `json:"track_inventory"`
	InventoryCount int      `json:"inventory_count"`
}

type destinationIDResponse struct {
	ID string `json:"id"`
}

// GetIDByHandle resolves a destination product id by handle.
func (d *HTTPProductDestination) GetIDByHandle(ctx context.Context, st *store.Store, handle string) (string, error) {
	if handle == "" {
		return "", errs.NewValueIsRequiredError("handle")
	}

	endpoint := destinationURL(st, "/api/products/handle/"+url.PathEscape(handle))
	body, status, err := d.do(ctx, st, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	if status == http.StatusNotFound {
		return "", errs.NewObjectNotFoundError("product", handle)
	}
	if status != http.StatusOK {
		return "", destinationFailure(http.MethodGet, endpoint, status, body)
	}

	var resp destinationIDResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", errs.NewUpstreamFailureErrorWithCause(destinationProviderName, string(body), err)
	}
	if resp.ID == "" {
		return "", errs.NewUpstreamFailureError(destinationProviderName, "handle lookup: empty id")
	}
	return resp.ID, nil
}

// Create inserts a new product and returns its destination id.
func (d *HTTPProductDestination) Create(ctx context.Context, st *store.Store, p product.DestinationProduct) (string, error) {
	endpoint := destinationURL(st, "/api/products")
	body, status, err := d.do(ctx, st, http.MethodPost, endpoint, destinationFromDomain(p))
	if err != nil {
		return "", err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return "", destinationFailure(http.MethodPost, endpoint, status, body)
	}

	var resp destinationIDResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", errs.NewUpstreamFailureErrorWithCause(destinationProviderName, string(body), err)
	}
	if resp.ID == "" {
		return "", errs.NewUpstreamFailureError(destinationProviderName, "create: empty id")
	}
	return resp.ID, nil
}

// Update overwrites an existing product.
func (d *HTTPProductDestination) Update(ctx context.Context, st *store.Store, id string, p product.DestinationProduct) error {
	if id == "" {
		return errs.NewValueIsRequiredError("id")
	}

	endpoint := destinationURL(st, "/api/products/"+url.PathEscape(id))
	body, status, err := d.do(ctx, st, http.MethodPut, endpoint, destinationFromDomain(p))
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return errs.NewObjectNotFoundError("product", id)
	}
	if status < 200 || status >= 300 {
		return destinationFailure(http.MethodPut, endpoint, status, body)
	}
	return nil
}

func (d *HTTPProductDestination) do(ctx context.Context, st *store.Store, method, endpoint string, payload any) ([]byte, int, error) {
	if err := st.Validate(); err != nil {
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

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+st.DestinationToken())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, 0, errs.NewUpstreamFailureErrorWithCause(destinationProviderName, method+" "+endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, 0, errs.NewUpstreamFailureErrorWithCause(destinationProviderName, method+" "+endpoint, err)
	}
	return body, resp.StatusCode, nil
}

func destinationURL(st *store.Store, path string) string {
	return strings.TrimRight(st.DestinationURL(), "/") + path
}

func destinationFailure(method, endpoint string, status int, body []byte) error {
	return errs.NewUpstreamFailureError(destinationProviderName,
		fmt.Sprintf("%s %s: status %d: %s", method, endpoint, status, truncate(body, 2048)))
}

func destinationFromDomain(p product.DestinationProduct) destinationProductDTO {
	dto := destinationProductDTO{
		Handle:      p.Handle,
		Name:        p.Name,
		Description: p.Description,
		Vendor:      p.Vendor,
		Category:    p.Category,
		Tags:        p.Tags,
		Published:   p.Published,
		Images:      p.Images,
	}
	for _, opt := range p.Options {
		dto.Options = append(dto.Options, destinationOptionDTO{Name: opt.Name, Values: opt.Values})
	}
	for _, v := range p.Variants {
		dto.Variants = append(dto.Variants, destinationVariantDTO{
			SKU:            v.SKU,
			Name:           v.Name,
			PriceMinor:     v.PriceMinor,
			Options:        v.Options,
			TrackInventory: v.TrackInventory,
			InventoryCount: v.InventoryCount,
		})
	}
	return dto
}
