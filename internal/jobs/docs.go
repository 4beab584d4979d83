// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the service.
//
// # Available Jobs
//
// 1. QuoteExpiryJob - Runs every minute to expire active delivery quotes whose window has passed
// 2. CatalogSyncJob - Runs hourly to sync the product catalog for every store with auto sync enabled
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(expireQuotesHandler, syncUoWFactory, syncStoreHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Quote expiry logs sweep failures and retries on the next tick
// - Catalog sync isolates stores: a failing store is logged and the rest still sync
// - Failed job starts will stop any already running jobs
package jobs
