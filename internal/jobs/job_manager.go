package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	quoteExpiryJob *QuoteExpiryJob
	catalogSyncJob *CatalogSyncJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	expireQuotesHandler commands.ExpireQuotesCommandHandler,
	syncUoWFactory commands.SyncUoWFactory,
	syncStoreHandler commands.SyncStoreCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		quoteExpiryJob: NewQuoteExpiryJob(expireQuotesHandler, logger),
		catalogSyncJob: NewCatalogSyncJob(syncUoWFactory, syncStoreHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.quoteExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start quote expiry job: %w", err)
	}

	if err := jm.catalogSyncJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.quoteExpiryJob.Stop()
		return fmt.Errorf("failed to start catalog sync job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.catalogSyncJob.Stop()
	jm.quoteExpiryJob.Stop()
}
