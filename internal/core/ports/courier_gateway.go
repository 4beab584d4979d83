package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// CourierQuoteRequest describes a package for which a price quote is wanted.
type CourierQuoteRequest struct {
	PickupAddress  string
	DropoffAddress string
	ItemCount      int
}

// CourierQuote is the courier's priced offer for a job.
type CourierQuote struct {
	ProviderQuoteID string
	Price           kernel.Money
	ETAMinutes      int
	ExpiresAt       time.Time
}

// CourierJobRequest describes a pickup-and-drop job to create at the courier.
type CourierJobRequest struct {
	ProviderQuoteID string
	PickupAddress   string
	DropoffAddress  string
	ContactName     string
	ContactPhone    string
	Reference       string
}

// CourierJob is a created courier job. RawResponse carries the provider's
// payload verbatim for the audit record.
type CourierJob struct {
	JobID       string
	PickupAt    time.Time
	RawResponse string
}

// CourierJobStatus is the courier's view of a job in flight.
type CourierJobStatus struct {
	Status      string
	DriverName  string
	DriverPhone string
	Location    string
	ETA         *time.Time
}

// CourierGateway is the outbound port for the third-party courier provider.
// Implementations authenticate with short-lived bearer tokens and translate
// provider failures into UpstreamFailureError.
type CourierGateway interface {
	// Quote requests a priced offer for a prospective job.
	Quote(ctx context.Context, req CourierQuoteRequest) (CourierQuote, error)

	// CreateJob books a job, optionally against a previously issued quote.
	CreateJob(ctx context.Context, req CourierJobRequest) (CourierJob, error)

	// GetJobStatus pulls the current status of a job from the provider.
	GetJobStatus(ctx context.Context, jobID string) (CourierJobStatus, error)

	// CancelJob cancels a job at the provider.
	CancelJob(ctx context.Context, jobID string) error
}
