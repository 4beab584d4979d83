package ports

import (
	"context"
	"errors"
)

// ErrCacheMiss is returned by StatusCache.Get when no entry exists for the key.
var ErrCacheMiss = errors.New("cache miss")

// StatusCache is a short-TTL cache for courier job statuses. It keeps status
// reads off the courier API between webhook updates.
type StatusCache interface {
	// Get returns the cached status for a job. ErrCacheMiss when absent.
	Get(ctx context.Context, jobID string) (CourierJobStatus, error)

	// Set stores the status for a job under the cache's TTL.
	Set(ctx context.Context, jobID string, status CourierJobStatus) error

	// Invalidate drops the cached status for a job.
	Invalidate(ctx context.Context, jobID string) error
}
