package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Money is a value object representing a monetary amount in minor units
// (cents, pence, and so on). Amounts are always non-negative; refunds and
// charges are modeled as separate operations rather than signed values.
//
// The zero value of Money represents zero minor units and is valid, which
// allows aggregates restored from persistence to carry a zero amount.
//
// Example:
//
//	total, err := kernel.NewMoney(5000) // 50.00 in minor units
//	if err != nil {
//	    // handle validation error
//	}
type Money struct {
	amount int64
}

// NewMoney creates a Money value from an amount in minor units.
// Returns an error if the amount is negative.
func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is negative", amount))
	}
	return Money{amount: amount}, nil
}

// Amount returns the monetary amount in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// IsZero reports whether the amount is zero minor units.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// IsEqual compares two Money values for equality.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

// String returns the amount formatted as minor units, e.g. "5000".
func (m Money) String() string {
	return fmt.Sprintf("%d", m.amount)
}
