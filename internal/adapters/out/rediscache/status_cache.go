// Package rediscache implements the StatusCache port on Redis. Job statuses
// are stored as JSON under a short TTL so status reads stay off the courier
// API between webhook updates.
package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const keyPrefix = "courier:job_status:"

// DefaultTTL bounds how stale a served courier status can be.
const DefaultTTL = 60 * time.Second

// RedisStatusCache is a StatusCache backed by Redis.
type RedisStatusCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStatusCache creates a cache from a Redis URL in the format
// redis://[:password@]host[:port][/database]. A non-positive ttl falls back
// to DefaultTTL.
func NewRedisStatusCache(redisURL string, ttl time.Duration) (*RedisStatusCache, error) {
	if redisURL == "" {
		return nil, errs.NewValueIsRequiredError("redisURL")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &RedisStatusCache{client: redis.NewClient(opts), ttl: ttl}, nil
}

// NewRedisStatusCacheWithClient wraps an existing client, for tests and for
// callers sharing a connection pool.
func NewRedisStatusCacheWithClient(client *redis.Client, ttl time.Duration) *RedisStatusCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStatusCache{client: client, ttl: ttl}
}

var _ ports.StatusCache = (*RedisStatusCache)(nil)

type cachedStatus struct {
	Status      string     `json:"status"`
	DriverName  string     `json:"driver_name,omitempty"`
	DriverPhone string     `json:"driver_phone,omitempty"`
	Location    string     `json:"location,omitempty"`
	ETA         *time.Time `json:"eta,omitempty"`
}

// Get returns the cached status for a job. ErrCacheMiss when absent.
func (c *RedisStatusCache) Get(ctx context.Context, jobID string) (ports.CourierJobStatus, error) {
	if jobID == "" {
		return ports.CourierJobStatus{}, errs.NewValueIsRequiredError("jobID")
	}

	raw, err := c.client.Get(ctx, keyPrefix+jobID).Bytes()
	if err == redis.Nil {
		return ports.CourierJobStatus{}, ports.ErrCacheMiss
	}
	if err != nil {
		return ports.CourierJobStatus{}, fmt.Errorf("failed to get status for job %s: %w", jobID, err)
	}

	var cached cachedStatus
	if err := json.Unmarshal(raw, &cached); err != nil {
		// A corrupt entry behaves like a miss; the caller refreshes it.
		return ports.CourierJobStatus{}, ports.ErrCacheMiss
	}

	return ports.CourierJobStatus{
		Status:      cached.Status,
		DriverName:  cached.DriverName,
		DriverPhone: cached.DriverPhone,
		Location:    cached.Location,
		ETA:         cached.ETA,
	}, nil
}

// Set stores the status for a job under the cache's TTL.
func (c *RedisStatusCache) Set(ctx context.Context, jobID string, status ports.CourierJobStatus) error {
	if jobID == "" {
		return errs.NewValueIsRequiredError("jobID")
	}

	raw, err := json.Marshal(cachedStatus{
		Status:      status.Status,
		DriverName:  status.DriverName,
		DriverPhone: status.DriverPhone,
		Location:    status.Location,
		ETA:         status.ETA,
	})
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, keyPrefix+jobID, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set status for job %s: %w", jobID, err)
	}
	return nil
}

// Invalidate drops the cached status for a job.
func (c *RedisStatusCache) Invalidate(ctx context.Context, jobID string) error {
	if jobID == "" {
		return errs.NewValueIsRequiredError("jobID")
	}

	if err := c.client.Del(ctx, keyPrefix+jobID).Err(); err != nil {
		return fmt.Errorf("failed to invalidate status for job %s: %w", jobID, err)
	}
	return nil
}

// Ping checks if Redis is reachable.
func (c *RedisStatusCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *RedisStatusCache) Close() error {
	return c.client.Close()
}
