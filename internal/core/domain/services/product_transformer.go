package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/pkg/errs"
)

// ErrNoVariants is returned when a source product carries no purchasable
// variants and therefore cannot be represented in the destination schema.
var ErrNoVariants = errors.New("product has no variants")

// ProductTransformer is a domain service that converts products from the
// source platform's representation into the destination backend's schema.
//
// Conversion rules:
//   - Decimal price strings become integer minor units ("19.99" -> 1999)
//   - A variant without a SKU falls back to the source variant ID
//   - Only active source products are published at the destination
//   - Option values are carried over positionally (option1..option3)
type ProductTransformer struct{}

// NewProductTransformer creates a new ProductTransformer instance.
func NewProductTransformer() ProductTransformer {
	return ProductTransformer{}
}

// Transform converts a source product into the destination schema.
// The source product must have a handle and at least one variant.
func (t ProductTransformer) Transform(src product.SourceProduct) (product.DestinationProduct, error) {
	if src.Handle == "" {
		return product.DestinationProduct{}, errs.NewValueIsRequiredError("handle")
	}
	if len(src.Variants) == 0 {
		return product.DestinationProduct{}, ErrNoVariants
	}

	variants := make([]product.DestinationVariant, 0, len(src.Variants))
	for _, v := range src.Variants {
		dv, err := t.transformVariant(v)
		if err != nil {
			return product.DestinationProduct{}, fmt.Errorf("variant %s: %w", v.ID, err)
		}
		variants = append(variants, dv)
	}

	images := make([]string, 0, len(src.Images))
	for _, img := range src.Images {
		if img.Src == "" {
			continue
		}
		images = append(images, img.Src)
	}

	options := make([]product.DestinationOption, 0, len(src.Options))
	for _, opt := range src.Options {
		options = append(options, product.DestinationOption{
			Name:   opt.Name,
			Values: append([]string(nil), opt.Values...),
		})
	}

	return product.DestinationProduct{
		Handle:      src.Handle,
		Name:        src.Title,
		Description: src.BodyHT,
		Vendor:      src.Vendor,
		Category:    src.ProductType,
		Tags:        append([]string(nil), src.Tags...),
		Published:   src.Status == "active",
		Images:      images,
		Options:     options,
		Variants:    variants,
	}, nil
}

func (t ProductTransformer) transformVariant(v product.SourceVariant) (product.DestinationVariant, error) {
	priceMinor, err := ParsePriceMinor(v.Price)
	if err != nil {
		return product.DestinationVariant{}, err
	}

	sku := v.SKU
	if sku == "" {
		sku = v.ID
	}

	opts := make([]string, 0, 3)
	for _, o := range []string{v.Option1, v.Option2, v.Option3} {
		if o == "" {
			continue
		}
		opts = append(opts, o)
	}

	return product.DestinationVariant{
		SKU:            sku,
		Name:           v.Title,
		PriceMinor:     priceMinor,
		Options:        opts,
		TrackInventory: v.InventoryTracked,
		InventoryCount: v.InventoryCount,
	}, nil
}

// ParsePriceMinor converts a decimal price string into minor units.
// At most two fractional digits are accepted; "7" and "7.5" are valid
// and become 700 and 750.
func ParsePriceMinor(price string) (int64, error) {
	if price == "" {
		return 0, errs.NewValueIsRequiredError("price")
	}

	whole, frac, _ := strings.Cut(price, ".")
	if len(frac) > 2 {
		return 0, errs.NewValueIsInvalidError("price")
	}
	for len(frac) < 2 {
		frac += "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units < 0 {
		return 0, errs.NewValueIsInvalidError("price")
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidError("price")
	}

	return units*100 + cents, nil
}
