package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrListActiveQuotesQueryIsNotConstructed = errors.New(
		"ListActiveQuotesQuery must be created via NewListActiveQuotesQuery constructor",
	)
)

// ListActiveQuotesQuery retrieves a page of quotes still open for acceptance.
type ListActiveQuotesQuery struct {
	guard  guard.ConstructorGuard
	limit  int
	offset int
}

// NewListActiveQuotesQuery creates a query for active quotes. A non-positive
// limit falls back to the default page size and limits above the maximum are
// clamped.
func NewListActiveQuotesQuery(limit, offset int) (ListActiveQuotesQuery, error) {
	if offset < 0 {
		return ListActiveQuotesQuery{}, errs.NewValueIsOutOfRangeError("offset", offset, 0, nil)
	}

	return ListActiveQuotesQuery{
		guard:  guard.NewConstructorGuard(),
		limit:  normalizeLimit(limit),
		offset: offset,
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListActiveQuotesQuery) Validate() error {
	return q.guard.Validate(ErrListActiveQuotesQueryIsNotConstructed)
}

// Limit returns the normalized page size.
func (q ListActiveQuotesQuery) Limit() int { return q.limit }

// Offset returns the page offset.
func (q ListActiveQuotesQuery) Offset() int { return q.offset }

// QuoteSummary is the read model for one quote in a listing.
type QuoteSummary struct {
	ID         kernel.UUID
	OrderID    kernel.UUID
	Price      int64
	ETAMinutes int
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

// QuotePage is a page of quote summaries with pagination metadata.
type QuotePage struct {
	Items  []QuoteSummary
	Total  int64
	Limit  int
	Offset int
}
