package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrListDeliveriesByStatusQueryIsNotConstructed = errors.New(
		"ListDeliveriesByStatusQuery must be created via NewListDeliveriesByStatusQuery constructor",
	)
)

// ListDeliveriesByStatusQuery retrieves a page of deliveries in a given status.
type ListDeliveriesByStatusQuery struct {
	guard  guard.ConstructorGuard
	status delivery.Status
	limit  int
	offset int
}

// NewListDeliveriesByStatusQuery creates a query for deliveries in the given
// wire status, e.g. "IN_TRANSIT". A non-positive limit falls back to the
// default page size and limits above the maximum are clamped.
func NewListDeliveriesByStatusQuery(status string, limit, offset int) (ListDeliveriesByStatusQuery, error) {
	parsed, err := delivery.StatusFromString(status)
	if err != nil {
		return ListDeliveriesByStatusQuery{}, err
	}

	if offset < 0 {
		return ListDeliveriesByStatusQuery{}, errs.NewValueIsOutOfRangeError("offset", offset, 0, nil)
	}

	return ListDeliveriesByStatusQuery{
		guard:  guard.NewConstructorGuard(),
		status: parsed,
		limit:  normalizeLimit(limit),
		offset: offset,
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListDeliveriesByStatusQuery) Validate() error {
	return q.guard.Validate(ErrListDeliveriesByStatusQueryIsNotConstructed)
}

// Status returns the status filter.
func (q ListDeliveriesByStatusQuery) Status() delivery.Status { return q.status }

// Limit returns the normalized page size.
func (q ListDeliveriesByStatusQuery) Limit() int { return q.limit }

// Offset returns the page offset.
func (q ListDeliveriesByStatusQuery) Offset() int { return q.offset }

// DeliverySummary is the read model for one delivery in a listing.
type DeliverySummary struct {
	ID           kernel.UUID
	OrderID      kernel.UUID
	CourierJobID string
	Status       string
	DriverName   string
	Price        int64
	CreatedAt    time.Time
}

// DeliveryPage is a page of delivery summaries with pagination metadata.
type DeliveryPage struct {
	Items  []DeliverySummary
	Total  int64
	Limit  int
	Offset int
}
