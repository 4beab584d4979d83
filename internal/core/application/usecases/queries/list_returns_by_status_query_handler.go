package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListReturnsByStatusQueryHandler retrieves return pages from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type ListReturnsByStatusQueryHandler struct {
	db *gorm.DB
}

// NewListReturnsByStatusQueryHandler creates a handler for return listings.
// Requires a GORM database connection for query execution.
func NewListReturnsByStatusQueryHandler(db *gorm.DB) ListReturnsByStatusQueryHandler {
	return ListReturnsByStatusQueryHandler{db: db}
}

// Handle executes the query and returns one page of returns plus the total
// match count. Results are sorted by request time, newest first.
func (h ListReturnsByStatusQueryHandler) Handle(
	ctx context.Context,
	query ListReturnsByStatusQuery,
) (ReturnPage, error) {
	if err := query.Validate(); err != nil {
		return ReturnPage{}, err
	}

	page := ReturnPage{
		Items:  make([]ReturnSummary, 0),
		Limit:  query.Limit(),
		Offset: query.Offset(),
	}

	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM returns WHERE status = ?
	`, int(query.Status())).Scan(&page.Total).Error
	if err != nil {
		return ReturnPage{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			customer_id,
			reason,
			status,
			refund_amount,
			requested_at
		FROM returns
		WHERE status = ?
		ORDER BY requested_at DESC
		LIMIT ? OFFSET ?
	`, int(query.Status()), query.Limit(), query.Offset()).Rows()
	if err != nil {
		return ReturnPage{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var summary ReturnSummary
		var id, orderID, customerID uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&orderID,
			&customerID,
			&summary.Reason,
			&status,
			&summary.Amount,
			&summary.RequestedAt,
		)
		if err != nil {
			return ReturnPage{}, err
		}

		if summary.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return ReturnPage{}, err
		}
		if summary.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return ReturnPage{}, err
		}
		if summary.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return ReturnPage{}, err
		}
		summary.Status = returns.Status(status).String()

		page.Items = append(page.Items, summary)
	}

	if err = rows.Err(); err != nil {
		return ReturnPage{}, err
	}

	return page, nil
}
