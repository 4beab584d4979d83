package returns

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrRefundRecordIsNotConstructed is returned when a RefundRecord was not
// created through the NewRefundRecord factory method.
var ErrRefundRecordIsNotConstructed = errors.New("RefundRecord must be created via NewRefundRecord constructor")

// RefundRecord is an immutable record of a processed refund.
// One is written per successful refund and never updated.
type RefundRecord struct {
	id kernel.UUID

	returnID kernel.UUID

	orderID kernel.UUID

	amount kernel.Money

	// providerRefundID is the payment provider's refund reference
	providerRefundID string

	createdAt time.Time

	isConstructed bool
}

// NewRefundRecord creates an immutable refund record for a processed refund.
func NewRefundRecord(
	id kernel.UUID,
	returnID kernel.UUID,
	orderID kernel.UUID,
	amount kernel.Money,
	providerRefundID string,
	createdAt time.Time,
) (*RefundRecord, error) {
	if err := errors.Join(id.Validate(), returnID.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	if providerRefundID == "" {
		return nil, errs.NewValueIsRequiredError("providerRefundID")
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &RefundRecord{
		id:               id,
		returnID:         returnID,
		orderID:          orderID,
		amount:           amount,
		providerRefundID: providerRefundID,
		createdAt:        createdAt,
		isConstructed:    true,
	}, nil
}

// Validate ensures the record was properly constructed.
func (rr *RefundRecord) Validate() error {
	if rr == nil || !rr.isConstructed {
		return ErrRefundRecordIsNotConstructed
	}
	return nil
}

// ID returns the record's unique identifier.
func (rr *RefundRecord) ID() kernel.UUID { return rr.id }

// ReturnID returns the refunded return's identifier.
func (rr *RefundRecord) ReturnID() kernel.UUID { return rr.returnID }

// OrderID returns the refunded order's identifier.
func (rr *RefundRecord) OrderID() kernel.UUID { return rr.orderID }

// Amount returns the refunded amount in minor units.
func (rr *RefundRecord) Amount() kernel.Money { return rr.amount }

// ProviderRefundID returns the payment provider's refund reference.
func (rr *RefundRecord) ProviderRefundID() string { return rr.providerRefundID }

// CreatedAt returns when the refund was recorded.
func (rr *RefundRecord) CreatedAt() time.Time { return rr.createdAt }
