package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetReturnQueryHandler retrieves a single return from the database.
type GetReturnQueryHandler struct {
	db *gorm.DB
}

// NewGetReturnQueryHandler creates a handler for single-return lookups.
func NewGetReturnQueryHandler(db *gorm.DB) GetReturnQueryHandler {
	return GetReturnQueryHandler{db: db}
}

// Handle executes the query. Returns ObjectNotFound when no return with the
// given id exists.
func (h GetReturnQueryHandler) Handle(
	ctx context.Context,
	query GetReturnQuery,
) (ReturnDetail, error) {
	if err := query.Validate(); err != nil {
		return ReturnDetail{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			customer_id,
			reason,
			comments,
			status,
			refund_amount,
			courier_job_id,
			pickup_at,
			requested_at,
			approved_at,
			rejected_at,
			reject_reason,
			refunded_at
		FROM returns
		WHERE id = ?
	`, query.ReturnID().Bytes()).Row()

	var detail ReturnDetail
	var id, orderID, customerID uuid.UUID
	var status int
	var courierJobID, rejectReason sql.NullString
	var pickupAt, approvedAt, rejectedAt, refundedAt sql.NullTime

	err := row.Scan(
		&id,
		&orderID,
		&customerID,
		&detail.Reason,
		&detail.Comments,
		&status,
		&detail.Amount,
		&courierJobID,
		&pickupAt,
		&detail.RequestedAt,
		&approvedAt,
		&rejectedAt,
		&rejectReason,
		&refundedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ReturnDetail{}, errs.NewObjectNotFoundError("return", query.ReturnID().String())
		}
		return ReturnDetail{}, err
	}

	if detail.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return ReturnDetail{}, err
	}
	if detail.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
		return ReturnDetail{}, err
	}
	if detail.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return ReturnDetail{}, err
	}
	detail.Status = returns.Status(status).String()
	detail.RejectReason = rejectReason.String

	if courierJobID.Valid {
		detail.CourierJobID = &courierJobID.String
	}
	if pickupAt.Valid {
		detail.PickupAt = &pickupAt.Time
	}
	if approvedAt.Valid {
		detail.ApprovedAt = &approvedAt.Time
	}
	if rejectedAt.Valid {
		detail.RejectedAt = &rejectedAt.Time
	}
	if refundedAt.Valid {
		detail.RefundedAt = &refundedAt.Time
	}

	return detail, nil
}
