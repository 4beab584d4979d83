package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions:
//
//	Created ──> DeliveryConfirmed ──> Delivered
//	   │               │                  │
//	   └───────────────┴──────────────────┴──> Refunded
//
// Refunded is reachable from any non-refunded state because a return can be
// processed before, during, or after the forward delivery completes.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status when an order is placed upstream.
	Created

	// DeliveryConfirmed indicates a courier delivery has been confirmed for the order.
	DeliveryConfirmed

	// Delivered indicates the courier reported the order as delivered.
	Delivered

	// Refunded indicates a return against the order was refunded.
	// This is a final state with no further transitions allowed.
	Refunded
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:           "UNKNOWN",
		Created:           "CREATED",
		DeliveryConfirmed: "DELIVERY_CONFIRMED",
		Delivered:         "DELIVERED",
		Refunded:          "REFUNDED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:           "CREATED",
		DeliveryConfirmed: "DELIVERY_CONFIRMED",
		Delivered:         "DELIVERED",
		Refunded:          "REFUNDED",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status, e.g. "DELIVERY_CONFIRMED".
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// ConfirmDelivery transitions the status to DeliveryConfirmed.
//
// Valid transitions:
//   - Created -> DeliveryConfirmed
//   - DeliveryConfirmed -> DeliveryConfirmed (re-confirmation after a cancelled delivery)
func (s Status) ConfirmDelivery() (Status, error) {
	if s != Created && s != DeliveryConfirmed {
		return 0, errs.NewInvalidStateError("confirm delivery", s.String())
	}
	return DeliveryConfirmed, nil
}

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - DeliveryConfirmed -> Delivered
func (s Status) Deliver() (Status, error) {
	if s != DeliveryConfirmed {
		return 0, errs.NewInvalidStateError("deliver", s.String())
	}
	return Delivered, nil
}

// Refund transitions the status to Refunded.
// Allowed from any valid non-refunded state; Refunded is final.
func (s Status) Refund() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s == Refunded {
		return 0, errs.NewInvalidStateError("refund", s.String())
	}
	return Refunded, nil
}
