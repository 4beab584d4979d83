package returns

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrReturnIsNotConstructed is returned when a Return instance was not created
	// through the NewReturn factory method.
	ErrReturnIsNotConstructed = errors.New("Return must be created via NewReturn constructor")
)

// Return represents a customer return from request to refund. It is the
// aggregate root of the return lifecycle; courier pickup and refund side
// effects are recorded against it as it moves through its statuses.
//
// Return follows these invariants:
//   - Must reference a valid order and customer
//   - Amount defaults to the order total and is expressed in minor units
//   - Status only advances forward through the chain, or diverts to Rejected
//     from a pre-approval state
//   - Can only be created through NewReturn or restored through RestoreReturn
type Return struct {
	id kernel.UUID

	orderID kernel.UUID

	customerID kernel.UUID

	reason string

	// itemIDs identifies the order line items being returned
	itemIDs []string

	comments string

	amount kernel.Money

	status Status

	// courierJobID is the provider-issued pickup job reference (nil until scheduled)
	courierJobID *string

	pickupAt *time.Time

	requestedAt time.Time

	approvedAt *time.Time

	rejectedAt *time.Time

	rejectReason string

	refundedAt *time.Time

	isConstructed bool
}

// NewReturn creates a new Return in Initiated status.
// The amount is the provisional refund amount, normally the order total.
func NewReturn(
	id kernel.UUID,
	orderID kernel.UUID,
	customerID kernel.UUID,
	reason string,
	itemIDs []string,
	comments string,
	amount kernel.Money,
	requestedAt time.Time,
) (*Return, error) {
	r := &Return{
		status:        Initiated,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setOrderID(orderID),
		r.setCustomerID(customerID),
		r.setReason(reason),
		r.setRequestedAt(requestedAt),
	); err != nil {
		return nil, err
	}

	r.itemIDs = append([]string(nil), itemIDs...)
	r.comments = comments
	r.amount = amount
	return r, nil
}

// RestoreReturn reconstructs a Return from persistence.
// The stored status must be valid.
func RestoreReturn(
	id kernel.UUID,
	orderID kernel.UUID,
	customerID kernel.UUID,
	reason string,
	itemIDs []string,
	comments string,
	amount kernel.Money,
	status Status,
	courierJobID *string,
	pickupAt *time.Time,
	requestedAt time.Time,
	approvedAt *time.Time,
	rejectedAt *time.Time,
	rejectReason string,
	refundedAt *time.Time,
) (*Return, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	r := &Return{
		status:        status,
		courierJobID:  courierJobID,
		pickupAt:      pickupAt,
		approvedAt:    approvedAt,
		rejectedAt:    rejectedAt,
		rejectReason:  rejectReason,
		refundedAt:    refundedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setOrderID(orderID),
		r.setCustomerID(customerID),
		r.setReason(reason),
		r.setRequestedAt(requestedAt),
	); err != nil {
		return nil, err
	}

	r.itemIDs = append([]string(nil), itemIDs...)
	r.comments = comments
	r.amount = amount
	return r, nil
}

// Validate ensures the Return instance was properly constructed.
func (r *Return) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReturnIsNotConstructed
	}
	return nil
}

// ID returns the return's unique identifier.
func (r *Return) ID() kernel.UUID { return r.id }

// OrderID returns the identifier of the order being returned against.
func (r *Return) OrderID() kernel.UUID { return r.orderID }

// CustomerID returns the identifier of the requesting customer.
func (r *Return) CustomerID() kernel.UUID { return r.customerID }

// Reason returns the customer-supplied return reason.
func (r *Return) Reason() string { return r.reason }

// ItemIDs returns the identifiers of the returned items.
func (r *Return) ItemIDs() []string { return append([]string(nil), r.itemIDs...) }

// Comments returns optional free-text comments from the customer.
func (r *Return) Comments() string { return r.comments }

// Amount returns the refund amount in minor units.
func (r *Return) Amount() kernel.Money { return r.amount }

// Status returns the current lifecycle status.
func (r *Return) Status() Status { return r.status }

// CourierJobID returns the pickup job reference, or nil if none was scheduled.
func (r *Return) CourierJobID() *string { return r.courierJobID }

// PickupAt returns the scheduled pickup time, or nil.
func (r *Return) PickupAt() *time.Time { return r.pickupAt }

// RequestedAt returns when the customer initiated the return.
func (r *Return) RequestedAt() time.Time { return r.requestedAt }

// ApprovedAt returns when the merchant approved the return, or nil.
func (r *Return) ApprovedAt() *time.Time { return r.approvedAt }

// RejectedAt returns when the merchant rejected the return, or nil.
func (r *Return) RejectedAt() *time.Time { return r.rejectedAt }

// RejectReason returns the merchant's rejection reason.
func (r *Return) RejectReason() string { return r.rejectReason }

// RefundedAt returns when the refund was processed, or nil.
func (r *Return) RefundedAt() *time.Time { return r.refundedAt }

// Approve marks the return as accepted by the merchant.
// A non-nil amount overrides the provisional refund amount, e.g. for
// partial returns. Only pre-approval statuses can be approved, with one
// exception: an Approved return with no courier job reference can be
// approved again, so a pickup booking that failed can be retried. The
// original approval timestamp is kept in that case.
func (r *Return) Approve(amount *kernel.Money, now time.Time) error {
	if r.status == Approved && r.courierJobID == nil {
		if amount != nil {
			r.amount = *amount
		}
		return nil
	}

	newStatus, err := r.status.Approve()
	if err != nil {
		return err
	}

	if amount != nil {
		r.amount = *amount
	}
	r.status = newStatus
	r.approvedAt = &now
	return nil
}

// Reject marks the return as declined, recording the reason and timestamp.
// Only pre-approval statuses can be rejected.
func (r *Return) Reject(reason string, now time.Time) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	newStatus, err := r.status.Reject()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.rejectReason = reason
	r.rejectedAt = &now
	return nil
}

// SchedulePickup records a created courier pickup job and advances the
// return to PickupScheduled. The return must be Approved.
func (r *Return) SchedulePickup(courierJobID string, pickupAt time.Time) error {
	if courierJobID == "" {
		return errs.NewValueIsRequiredError("courierJobID")
	}

	newStatus, err := r.status.SchedulePickup()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.courierJobID = &courierJobID
	r.pickupAt = &pickupAt
	return nil
}

// MarkRefunded records a processed refund and moves the return to Refunded.
// The return must be in Received status.
func (r *Return) MarkRefunded(now time.Time) error {
	newStatus, err := r.status.Refund()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.refundedAt = &now
	return nil
}

// AdvanceTo applies a courier-reported forward status move.
// Backward moves and moves out of a final status are rejected.
func (r *Return) AdvanceTo(target Status) error {
	newStatus, err := r.status.AdvanceTo(target)
	if err != nil {
		return err
	}

	r.status = newStatus
	return nil
}

func (r *Return) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Return) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}
	r.orderID = id
	return nil
}

func (r *Return) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}
	r.customerID = id
	return nil
}

func (r *Return) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	r.reason = reason
	return nil
}

func (r *Return) setRequestedAt(requestedAt time.Time) error {
	if requestedAt.IsZero() {
		return errs.NewValueIsRequiredError("requestedAt")
	}
	r.requestedAt = requestedAt
	return nil
}
