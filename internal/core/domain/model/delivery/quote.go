package delivery

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrQuoteIsNotConstructed is returned when a Quote instance was not created
// through the NewQuote factory method.
var ErrQuoteIsNotConstructed = errors.New("Quote must be created via NewQuote constructor")

// QuoteStatus represents the lifecycle state of a delivery quote.
//
// A quote starts Active, becomes Accepted when a delivery is confirmed from
// it, or Expired once its expiry passes. Accepted and Expired are final.
type QuoteStatus int

const (
	// QuoteUnknown represents an invalid or undefined quote status.
	QuoteUnknown QuoteStatus = iota

	// QuoteActive indicates the quote can still be accepted.
	QuoteActive

	// QuoteAccepted indicates a delivery was confirmed from the quote.
	QuoteAccepted

	// QuoteExpired indicates the quote's expiry passed before acceptance.
	QuoteExpired
)

func getQuoteStatusStrings() map[QuoteStatus]string {
	return map[QuoteStatus]string{
		QuoteUnknown:  "UNKNOWN",
		QuoteActive:   "ACTIVE",
		QuoteAccepted: "ACCEPTED",
		QuoteExpired:  "EXPIRED",
	}
}

// Validate checks if the QuoteStatus value is valid.
func (s QuoteStatus) Validate() error {
	if s <= QuoteUnknown || s > QuoteExpired {
		return errs.NewValueIsInvalidErrorWithCause("quote status is invalid",
			fmt.Errorf("%d is not a valid quote status", s))
	}
	return nil
}

// String returns the wire representation of the quote status, e.g. "ACTIVE".
func (s QuoteStatus) String() string {
	if str, ok := getQuoteStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Quote is a priced, time-bound offer for a delivery. A quote must be
// accepted before its expiry for a courier job to be created from it.
type Quote struct {
	id kernel.UUID

	orderID kernel.UUID

	price kernel.Money

	// etaMinutes is the courier's estimated delivery duration
	etaMinutes int

	expiresAt time.Time

	status QuoteStatus

	createdAt time.Time

	isConstructed bool
}

// NewQuote creates a new Quote in Active status.
func NewQuote(
	id kernel.UUID,
	orderID kernel.UUID,
	price kernel.Money,
	etaMinutes int,
	expiresAt time.Time,
	createdAt time.Time,
) (*Quote, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	if etaMinutes <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("etaMinutes",
			fmt.Errorf("%d is not greater than 0", etaMinutes))
	}
	if expiresAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("expiresAt")
	}

	return &Quote{
		id:            id,
		orderID:       orderID,
		price:         price,
		etaMinutes:    etaMinutes,
		expiresAt:     expiresAt,
		status:        QuoteActive,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreQuote reconstructs a Quote from persistence.
func RestoreQuote(
	id kernel.UUID,
	orderID kernel.UUID,
	price kernel.Money,
	etaMinutes int,
	expiresAt time.Time,
	status QuoteStatus,
	createdAt time.Time,
) (*Quote, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Quote{
		id:            id,
		orderID:       orderID,
		price:         price,
		etaMinutes:    etaMinutes,
		expiresAt:     expiresAt,
		status:        status,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Quote instance was properly constructed.
func (q *Quote) Validate() error {
	if q == nil || !q.isConstructed {
		return ErrQuoteIsNotConstructed
	}
	return nil
}

// ID returns the quote's unique identifier.
func (q *Quote) ID() kernel.UUID { return q.id }

// OrderID returns the quoted order's identifier.
func (q *Quote) OrderID() kernel.UUID { return q.orderID }

// Price returns the quoted price in minor units.
func (q *Quote) Price() kernel.Money { return q.price }

// ETAMinutes returns the courier's estimated delivery duration in minutes.
func (q *Quote) ETAMinutes() int { return q.etaMinutes }

// ExpiresAt returns when the quote stops being acceptable.
func (q *Quote) ExpiresAt() time.Time { return q.expiresAt }

// Status returns the quote's current status.
func (q *Quote) Status() QuoteStatus { return q.status }

// CreatedAt returns when the quote was requested.
func (q *Quote) CreatedAt() time.Time { return q.createdAt }

// IsExpired reports whether the quote's expiry has passed at the given moment.
func (q *Quote) IsExpired(now time.Time) bool {
	return now.After(q.expiresAt)
}

// Accept consumes the quote for a confirmed delivery.
// Fails if the quote is not Active or its expiry has passed.
func (q *Quote) Accept(now time.Time) error {
	if q.status != QuoteActive {
		return errs.NewInvalidStateError("accept quote", q.status.String())
	}
	if q.IsExpired(now) {
		return errs.NewInvalidStateErrorWithCause("accept quote", q.status.String(),
			fmt.Errorf("quote expired at %s", q.expiresAt.Format(time.RFC3339)))
	}

	q.status = QuoteAccepted
	return nil
}

// MarkExpired moves an Active quote to Expired.
func (q *Quote) MarkExpired() error {
	if q.status != QuoteActive {
		return errs.NewInvalidStateError("expire quote", q.status.String())
	}

	q.status = QuoteExpired
	return nil
}
