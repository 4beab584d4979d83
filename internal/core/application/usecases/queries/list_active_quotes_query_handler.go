package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListActiveQuotesQueryHandler retrieves pages of active quotes from the database.
type ListActiveQuotesQueryHandler struct {
	db *gorm.DB
}

// NewListActiveQuotesQueryHandler creates a handler for active quote listings.
func NewListActiveQuotesQueryHandler(db *gorm.DB) ListActiveQuotesQueryHandler {
	return ListActiveQuotesQueryHandler{db: db}
}

// Handle executes the query and returns one page of active quotes plus the
// total match count. Quotes closest to expiry come first so callers see what
// needs acting on.
func (h ListActiveQuotesQueryHandler) Handle(
	ctx context.Context,
	query ListActiveQuotesQuery,
) (QuotePage, error) {
	if err := query.Validate(); err != nil {
		return QuotePage{}, err
	}

	page := QuotePage{
		Items:  make([]QuoteSummary, 0),
		Limit:  query.Limit(),
		Offset: query.Offset(),
	}

	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM quotes WHERE status = ?
	`, int(delivery.QuoteActive)).Scan(&page.Total).Error
	if err != nil {
		return QuotePage{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			price_amount,
			eta_minutes,
			expires_at,
			created_at
		FROM quotes
		WHERE status = ?
		ORDER BY expires_at
		LIMIT ? OFFSET ?
	`, int(delivery.QuoteActive), query.Limit(), query.Offset()).Rows()
	if err != nil {
		return QuotePage{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var summary QuoteSummary
		var id, orderID uuid.UUID

		err = rows.Scan(
			&id,
			&orderID,
			&summary.Price,
			&summary.ETAMinutes,
			&summary.ExpiresAt,
			&summary.CreatedAt,
		)
		if err != nil {
			return QuotePage{}, err
		}

		if summary.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return QuotePage{}, err
		}
		if summary.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return QuotePage{}, err
		}

		page.Items = append(page.Items, summary)
	}

	if err = rows.Err(); err != nil {
		return QuotePage{}, err
	}

	return page, nil
}
