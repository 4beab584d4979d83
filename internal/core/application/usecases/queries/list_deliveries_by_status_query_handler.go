package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListDeliveriesByStatusQueryHandler retrieves delivery pages from the database.
type ListDeliveriesByStatusQueryHandler struct {
	db *gorm.DB
}

// NewListDeliveriesByStatusQueryHandler creates a handler for delivery listings.
func NewListDeliveriesByStatusQueryHandler(db *gorm.DB) ListDeliveriesByStatusQueryHandler {
	return ListDeliveriesByStatusQueryHandler{db: db}
}

// Handle executes the query and returns one page of deliveries plus the total
// match count. Results are sorted by creation time, newest first.
func (h ListDeliveriesByStatusQueryHandler) Handle(
	ctx context.Context,
	query ListDeliveriesByStatusQuery,
) (DeliveryPage, error) {
	if err := query.Validate(); err != nil {
		return DeliveryPage{}, err
	}

	page := DeliveryPage{
		Items:  make([]DeliverySummary, 0),
		Limit:  query.Limit(),
		Offset: query.Offset(),
	}

	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM deliveries WHERE status = ?
	`, int(query.Status())).Scan(&page.Total).Error
	if err != nil {
		return DeliveryPage{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			courier_job_id,
			status,
			driver_name,
			price_amount,
			created_at
		FROM deliveries
		WHERE status = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, int(query.Status()), query.Limit(), query.Offset()).Rows()
	if err != nil {
		return DeliveryPage{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var summary DeliverySummary
		var id, orderID uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&orderID,
			&summary.CourierJobID,
			&status,
			&summary.DriverName,
			&summary.Price,
			&summary.CreatedAt,
		)
		if err != nil {
			return DeliveryPage{}, err
		}

		if summary.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return DeliveryPage{}, err
		}
		if summary.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return DeliveryPage{}, err
		}
		summary.Status = delivery.Status(status).String()

		page.Items = append(page.Items, summary)
	}

	if err = rows.Err(); err != nil {
		return DeliveryPage{}, err
	}

	return page, nil
}
