// Package platform implements the ProductSource and ProductDestination ports.
// The source side reads a store's catalog from its commerce platform; the
// destination side writes products to the order-management backend the store
// is connected to. Both take credentials from the store record per call, so a
// single adapter instance serves every connected store.
package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const (
	sourceProviderName = "platform"

	// sourcePageSize is the platform's maximum products-per-page.
	sourcePageSize = 250

	apiVersion = "2024-01"
)

// HTTPProductSource reads catalogs from the commerce platform's admin API.
type HTTPProductSource struct {
	httpClient *http.Client
}

// NewHTTPProductSource creates a product source. Timeout defaults to 30
// seconds; catalog pages are large.
func NewHTTPProductSource(timeout time.Duration) *HTTPProductSource {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPProductSource{httpClient: &http.Client{Timeout: timeout}}
}

var _ ports.ProductSource = (*HTTPProductSource)(nil)

type sourceProductsResponse struct {
	Products []sourceProductDTO `json:"products"`
}

type sourceProductDTO struct {
	ID          json.Number        `json:"id"`
	Title       string             `json:"title"`
	Handle      string             `json:"handle"`
	BodyHTML    string             `json:"body_html"`
	Vendor      string             `json:"vendor"`
	ProductType string             `json:"product_type"`
	Tags        string             `json:"tags"`
	Status      string             `json:"status"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Images      []sourceImageDTO   `json:"images"`
	Options     []sourceOptionDTO  `json:"options"`
	Variants    []sourceVariantDTO `json:"variants"`
}

type sourceImageDTO struct {
	Src      string `json:"src"`
	Alt      string `json:"alt"`
	Position int    `json:"position"`
}

type sourceOptionDTO struct {
	Name     string   `json:"name"`
	Position int      `json:"position"`
	Values   []string `json:"values"`
}

type sourceVariantDTO struct {
	ID                json.Number `json:"id"`
	SKU               string      `json:"sku"`
	Title             string      `json:"title"`
	Price             string      `json:"price"`
	Option1           string      `json:"option1"`
	Option2           string      `json:"option2"`
	Option3           string      `json:"option3"`
	InventoryPolicy   string      `json:"inventory_policy"`
	InventoryQuantity int         `json:"inventory_quantity"`
}

// nextPageInfo pulls the page_info cursor out of the platform's Link header,
// e.g. <https://shop.example.com/...?page_info=abc&limit=250>; rel="next".
var nextPageInfo = regexp.MustCompile(`<[^>]*[?&]page_info=([^&>]+)[^>]*>;\s*rel="next"`)

// ListActiveProducts fetches one page of the store's active products.
// Iteration follows the platform's cursor: pass the returned NextPageToken
// until it comes back empty.
func (s *HTTPProductSource) ListActiveProducts(ctx context.Context, st *store.Store, pageToken string) (ports.ProductPage, error) {
	if err := st.Validate(); err != nil {
		return ports.ProductPage{}, err
	}
	if err := st.ValidateSyncConfig(); err != nil {
		return ports.ProductPage{}, err
	}

	query := url.Values{}
	query.Set("limit", fmt.Sprint(sourcePageSize))
	if pageToken == "" {
		query.Set("status", "active")
	} else {
		// The platform rejects filter params on cursored requests.
		query.Set("page_info", pageToken)
	}

	endpoint := fmt.Sprintf("%s/admin/api/%s/products.json?%s", platformBaseURL(st.PlatformDomain()), apiVersion, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.ProductPage{}, err
	}
	req.Header.Set("X-Platform-Access-Token", st.PlatformToken())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return ports.ProductPage{}, errs.NewUpstreamFailureErrorWithCause(sourceProviderName, st.PlatformDomain(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return ports.ProductPage{}, errs.NewUpstreamFailureErrorWithCause(sourceProviderName, st.PlatformDomain(), err)
	}
	if resp.StatusCode != http.StatusOK {
		return ports.ProductPage{}, errs.NewUpstreamFailureError(sourceProviderName,
			fmt.Sprintf("%s: status %d: %s", st.PlatformDomain(), resp.StatusCode, truncate(body, 2048)))
	}

	var decoded sourceProductsResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return ports.ProductPage{}, errs.NewUpstreamFailureErrorWithCause(sourceProviderName, st.PlatformDomain(), err)
	}

	page := ports.ProductPage{
		Products: make([]product.SourceProduct, 0, len(decoded.Products)),
	}
	for _, dto := range decoded.Products {
		page.Products = append(page.Products, dto.toDomain())
	}
	if match := nextPageInfo.FindStringSubmatch(resp.Header.Get("Link")); match != nil {
		page.NextPageToken = match[1]
	}
	return page, nil
}

func (dto sourceProductDTO) toDomain() product.SourceProduct {
	p := product.SourceProduct{
		ID:          dto.ID.String(),
		Title:       dto.Title,
		Handle:      dto.Handle,
		BodyHT:      dto.BodyHTML,
		Vendor:      dto.Vendor,
		ProductType: dto.ProductType,
		Tags:        splitTags(dto.Tags),
		Status:      dto.Status,
		UpdatedAt:   dto.UpdatedAt,
	}
	for _, img := range dto.Images {
		p.Images = append(p.Images, product.SourceImage{Src: img.Src, Alt: img.Alt, Position: img.Position})
	}
	for _, opt := range dto.Options {
		p.Options = append(p.Options, product.SourceOption{Name: opt.Name, Position: opt.Position, Values: opt.Values})
	}
	for _, v := range dto.Variants {
		p.Variants = append(p.Variants, product.SourceVariant{
			ID:               v.ID.String(),
			SKU:              v.SKU,
			Title:            v.Title,
			Price:            v.Price,
			Option1:          v.Option1,
			Option2:          v.Option2,
			Option3:          v.Option3,
			InventoryTracked: v.InventoryPolicy != "",
			InventoryCount:   v.InventoryQuantity,
		})
	}
	return p
}

// platformBaseURL accepts either a bare admin domain or a full URL. Bare
// domains get https; an explicit scheme wins.
func platformBaseURL(domain string) string {
	if strings.Contains(domain, "://") {
		return strings.TrimRight(domain, "/")
	}
	return "https://" + domain
}

// splitTags turns the platform's comma-separated tag string into a slice.
func splitTags(tags string) []string {
	if tags == "" {
		return nil
	}
	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func truncate(body []byte, limit int) string {
	if len(body) > limit {
		body = body[:limit]
	}
	return string(body)
}
