package delivery

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrJobRecordIsNotConstructed is returned when a JobRecord was not created
// through the NewJobRecord factory method.
var ErrJobRecordIsNotConstructed = errors.New("JobRecord must be created via NewJobRecord constructor")

// JobRecord is an append-only audit record of a courier job created by this
// service. It stores the provider's raw response so a job can be replayed or
// inspected after the fact.
type JobRecord struct {
	id kernel.UUID

	// courierJobID is the provider-issued job reference
	courierJobID string

	// purpose distinguishes forward deliveries from return pickups
	purpose string

	rawResponse string

	createdAt time.Time

	isConstructed bool
}

// Job purposes recorded in the audit log.
const (
	JobPurposeDelivery = "delivery"
	JobPurposePickup   = "return_pickup"
)

// NewJobRecord creates an audit record for a created courier job.
func NewJobRecord(
	id kernel.UUID,
	courierJobID string,
	purpose string,
	rawResponse string,
	createdAt time.Time,
) (*JobRecord, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if courierJobID == "" {
		return nil, errs.NewValueIsRequiredError("courierJobID")
	}
	if purpose != JobPurposeDelivery && purpose != JobPurposePickup {
		return nil, errs.NewValueIsInvalidError("purpose")
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &JobRecord{
		id:            id,
		courierJobID:  courierJobID,
		purpose:       purpose,
		rawResponse:   rawResponse,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the record was properly constructed.
func (jr *JobRecord) Validate() error {
	if jr == nil || !jr.isConstructed {
		return ErrJobRecordIsNotConstructed
	}
	return nil
}

// ID returns the record's unique identifier.
func (jr *JobRecord) ID() kernel.UUID { return jr.id }

// CourierJobID returns the provider-issued job reference.
func (jr *JobRecord) CourierJobID() string { return jr.courierJobID }

// Purpose returns what the job was created for.
func (jr *JobRecord) Purpose() string { return jr.purpose }

// RawResponse returns the provider's raw response body.
func (jr *JobRecord) RawResponse() string { return jr.rawResponse }

// CreatedAt returns when the job was recorded.
func (jr *JobRecord) CreatedAt() time.Time { return jr.createdAt }
