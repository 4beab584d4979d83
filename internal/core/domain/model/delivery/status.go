package delivery

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a forward delivery.
// The happy path only moves forward:
//
//	Confirmed ──> DriverAssigned ──> PickingUp ──> InTransit ──> Delivered
//
// DeliveryFailed and Cancelled divert from any non-final state. All three of
// Delivered, DeliveryFailed, and Cancelled are final, and a final state can
// never be entered twice, which keeps terminal side effects from firing more
// than once per delivery.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Confirmed is the initial status once a quote is accepted and the
	// courier job is created.
	Confirmed

	// DriverAssigned indicates the courier assigned a driver to the job.
	DriverAssigned

	// PickingUp indicates the driver is collecting the package.
	PickingUp

	// InTransit indicates the package is on its way to the customer.
	InTransit

	// Delivered indicates the courier completed the delivery. Final state.
	Delivered

	// DeliveryFailed indicates the courier could not complete the delivery. Final state.
	DeliveryFailed

	// Cancelled indicates the delivery was cancelled. Final state.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Confirmed:      "CONFIRMED",
		DriverAssigned: "DRIVER_ASSIGNED",
		PickingUp:      "PICKING_UP",
		InTransit:      "IN_TRANSIT",
		Delivered:      "DELIVERED",
		DeliveryFailed: "DELIVERY_FAILED",
		Cancelled:      "CANCELLED",
	}
}

// StatusFromString parses a wire status value such as "IN_TRANSIT".
// Returns a ValueIsInvalidError for unrecognized values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a recognized delivery status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status, e.g. "IN_TRANSIT".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsFinal reports whether the status permits no further transitions.
func (s Status) IsFinal() bool {
	return s == Delivered || s == DeliveryFailed || s == Cancelled
}

// rank positions a status on the forward chain. Final failure states carry
// no rank because they divert from the chain rather than extend it.
func (s Status) rank() (int, bool) {
	switch s {
	case Confirmed, DriverAssigned, PickingUp, InTransit, Delivered:
		return int(s), true
	default:
		return 0, false
	}
}

// AdvanceTo validates a courier-driven move to the target status.
// Forward moves along the chain may skip statuses the courier never reported.
// DeliveryFailed is reachable from any non-final status. Moves backward,
// same-status moves, and moves out of a final status are rejected.
func (s Status) AdvanceTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}

	if s.IsFinal() {
		return 0, errs.NewInvalidStateError("advance", s.String())
	}

	if target == DeliveryFailed || target == Cancelled {
		return target, nil
	}

	currentRank, ok := s.rank()
	if !ok {
		return 0, errs.NewInvalidStateError("advance", s.String())
	}

	targetRank, ok := target.rank()
	if !ok || targetRank <= currentRank {
		return 0, errs.NewInvalidStateErrorWithCause("advance", s.String(),
			fmt.Errorf("%s does not advance the delivery", target))
	}

	return target, nil
}
