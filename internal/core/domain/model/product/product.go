package product

import "time"

// SourceProduct is a product as read from the source commerce platform.
// Field names follow the platform's REST representation; prices arrive as
// decimal strings and are converted to minor units during transformation.
type SourceProduct struct {
	ID          string
	Title       string
	Handle      string
	BodyHT      string
	Vendor      string
	ProductType string
	Tags        []string
	Status      string
	Images      []SourceImage
	Options     []SourceOption
	Variants    []SourceVariant
	UpdatedAt   time.Time
}

// SourceImage is a product image on the source platform.
type SourceImage struct {
	Src      string
	Alt      string
	Position int
}

// SourceOption is a product option (e.g. Size, Color) on the source platform.
type SourceOption struct {
	Name     string
	Position int
	Values   []string
}

// SourceVariant is a purchasable variation of a source product.
type SourceVariant struct {
	ID               string
	SKU              string
	Title            string
	Price            string // decimal string, e.g. "19.99"
	Option1          string
	Option2          string
	Option3          string
	InventoryTracked bool
	InventoryCount   int
}

// DestinationProduct is a product in the destination backend's schema.
// Products are matched by Handle during synchronization.
type DestinationProduct struct {
	Handle      string
	Name        string
	Description string
	Vendor      string
	Category    string
	Tags        []string
	Published   bool
	Images      []string
	Options     []DestinationOption
	Variants    []DestinationVariant
}

// DestinationOption is a product option in the destination schema.
type DestinationOption struct {
	Name   string
	Values []string
}

// DestinationVariant is a variant in the destination schema with its price
// in minor units.
type DestinationVariant struct {
	SKU            string
	Name           string
	PriceMinor     int64
	Options        []string
	TrackInventory bool
	InventoryCount int
}
