// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Pagination bounds shared by the list queries.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

var (
	ErrListReturnsByStatusQueryIsNotConstructed = errors.New(
		"ListReturnsByStatusQuery must be created via NewListReturnsByStatusQuery constructor",
	)
)

// ListReturnsByStatusQuery retrieves a page of returns in a given status.
//
// Example:
//
//	query, err := NewListReturnsByStatusQuery("PENDING_APPROVAL", 20, 0)
//	if err != nil {
//	    return err
//	}
//
//	page, err := handler.Handle(ctx, query)
type ListReturnsByStatusQuery struct {
	guard  guard.ConstructorGuard
	status returns.Status
	limit  int
	offset int
}

// NewListReturnsByStatusQuery creates a query for returns in the given wire
// status, e.g. "PENDING_APPROVAL". A non-positive limit falls back to the
// default page size and limits above the maximum are clamped.
func NewListReturnsByStatusQuery(status string, limit, offset int) (ListReturnsByStatusQuery, error) {
	parsed, err := returns.StatusFromString(status)
	if err != nil {
		return ListReturnsByStatusQuery{}, err
	}

	if offset < 0 {
		return ListReturnsByStatusQuery{}, errs.NewValueIsOutOfRangeError("offset", offset, 0, nil)
	}

	return ListReturnsByStatusQuery{
		guard:  guard.NewConstructorGuard(),
		status: parsed,
		limit:  normalizeLimit(limit),
		offset: offset,
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListReturnsByStatusQuery) Validate() error {
	return q.guard.Validate(ErrListReturnsByStatusQueryIsNotConstructed)
}

// Status returns the status filter.
func (q ListReturnsByStatusQuery) Status() returns.Status { return q.status }

// Limit returns the normalized page size.
func (q ListReturnsByStatusQuery) Limit() int { return q.limit }

// Offset returns the page offset.
func (q ListReturnsByStatusQuery) Offset() int { return q.offset }

// ReturnSummary is the read model for one return in a listing.
type ReturnSummary struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	CustomerID  kernel.UUID
	Reason      string
	Status      string
	Amount      int64
	RequestedAt time.Time
}

// ReturnPage is a page of return summaries with pagination metadata.
type ReturnPage struct {
	Items  []ReturnSummary
	Total  int64
	Limit  int
	Offset int
}

func normalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultPageLimit
	case limit > MaxPageLimit:
		return MaxPageLimit
	default:
		return limit
	}
}
