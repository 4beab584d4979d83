package returns

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a customer return.
// It implements a state machine whose happy path only moves forward:
//
//	Initiated ──> PendingApproval ──> Approved ──> PickupScheduled ──> PickedUp
//	     │               │                                                │
//	     └──> Rejected <─┘                                                v
//	                                     Refunded <── Received <── InTransit
//
// Rejected is reachable only from the pre-approval states (Initiated,
// PendingApproval). Refunded and Rejected are final.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Initiated is the initial status when a customer requests a return.
	Initiated

	// PendingApproval indicates the merchant has been asked to review the request.
	PendingApproval

	// Approved indicates the merchant accepted the return.
	Approved

	// PickupScheduled indicates a courier pickup job has been created.
	PickupScheduled

	// PickedUp indicates the courier collected the items from the customer.
	PickedUp

	// InTransit indicates the items are on their way back to the merchant.
	InTransit

	// Received indicates the merchant received the returned items.
	Received

	// Refunded indicates the refund was processed. Final state.
	Refunded

	// Rejected indicates the merchant declined the return. Final state.
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "UNKNOWN",
		Initiated:       "INITIATED",
		PendingApproval: "PENDING_APPROVAL",
		Approved:        "APPROVED",
		PickupScheduled: "PICKUP_SCHEDULED",
		PickedUp:        "PICKED_UP",
		InTransit:       "IN_TRANSIT",
		Received:        "RECEIVED",
		Refunded:        "REFUNDED",
		Rejected:        "REJECTED",
	}
}

// StatusFromString parses a wire status value such as "PICKUP_SCHEDULED".
// Returns a ValueIsInvalidError for unrecognized values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a recognized return status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if s <= Unknown || s > Rejected {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status, e.g. "PICKUP_SCHEDULED".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsFinal reports whether the status permits no further transitions.
func (s Status) IsFinal() bool {
	return s == Refunded || s == Rejected
}

// isPreApproval reports whether a return in this status can still be rejected.
func (s Status) isPreApproval() bool {
	return s == Initiated || s == PendingApproval
}

// rank positions a status on the forward chain. Rejected has no rank because
// it sits outside the forward progression.
func (s Status) rank() (int, bool) {
	if s == Unknown || s == Rejected {
		return 0, false
	}
	return int(s), true
}

// Approve transitions the status to Approved.
//
// Valid transitions:
//   - Initiated -> Approved
//   - PendingApproval -> Approved
func (s Status) Approve() (Status, error) {
	if !s.isPreApproval() {
		return 0, errs.NewInvalidStateError("approve", s.String())
	}
	return Approved, nil
}

// Reject transitions the status to Rejected.
// Only pre-approval statuses can be rejected; once a pickup is under way the
// return has to run its course.
func (s Status) Reject() (Status, error) {
	if !s.isPreApproval() {
		return 0, errs.NewInvalidStateError("reject", s.String())
	}
	return Rejected, nil
}

// SchedulePickup transitions the status to PickupScheduled.
//
// Valid transitions:
//   - Approved -> PickupScheduled
func (s Status) SchedulePickup() (Status, error) {
	if s != Approved {
		return 0, errs.NewInvalidStateError("schedule pickup", s.String())
	}
	return PickupScheduled, nil
}

// Refund transitions the status to Refunded.
//
// Valid transitions:
//   - Received -> Refunded
func (s Status) Refund() (Status, error) {
	if s != Received {
		return 0, errs.NewInvalidStateError("refund", s.String())
	}
	return Refunded, nil
}

// AdvanceTo validates a courier-driven forward move to the target status.
// The move must go strictly forward along the chain; skipping intermediate
// statuses is allowed because couriers may not report every hop, but moving
// backward or out of a final status is rejected.
func (s Status) AdvanceTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}

	if s.IsFinal() {
		return 0, errs.NewInvalidStateError("advance", s.String())
	}

	currentRank, ok := s.rank()
	if !ok {
		return 0, errs.NewInvalidStateError("advance", s.String())
	}

	targetRank, ok := target.rank()
	if !ok || targetRank <= currentRank {
		return 0, errs.NewInvalidStateErrorWithCause("advance", s.String(),
			fmt.Errorf("%s does not advance the return", target))
	}

	return target, nil
}
