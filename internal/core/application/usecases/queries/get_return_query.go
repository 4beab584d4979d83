package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetReturnQueryIsNotConstructed = errors.New(
		"GetReturnQuery must be created via NewGetReturnQuery constructor",
	)
)

// GetReturnQuery retrieves the full detail of one return.
type GetReturnQuery struct {
	guard    guard.ConstructorGuard
	returnID kernel.UUID
}

// NewGetReturnQuery creates a query for a single return.
func NewGetReturnQuery(returnID kernel.UUID) (GetReturnQuery, error) {
	if err := returnID.Validate(); err != nil {
		return GetReturnQuery{}, err
	}

	return GetReturnQuery{
		guard:    guard.NewConstructorGuard(),
		returnID: returnID,
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetReturnQuery) Validate() error {
	return q.guard.Validate(ErrGetReturnQueryIsNotConstructed)
}

// ReturnID returns the identifier of the requested return.
func (q GetReturnQuery) ReturnID() kernel.UUID { return q.returnID }

// ReturnDetail is the full read model of one return.
type ReturnDetail struct {
	ID           kernel.UUID
	OrderID      kernel.UUID
	CustomerID   kernel.UUID
	Reason       string
	Comments     string
	Status       string
	Amount       int64
	CourierJobID *string
	PickupAt     *time.Time
	RequestedAt  time.Time
	ApprovedAt   *time.Time
	RejectedAt   *time.Time
	RejectReason string
	RefundedAt   *time.Time
}
