package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/store"

	"github.com/robfig/cron/v3"
)

// CatalogSyncJob runs the product catalog sync for every store that has
// auto sync enabled. Runs hourly; each store syncs independently so one
// failing store does not block the rest.
type CatalogSyncJob struct {
	uowFactory commands.SyncUoWFactory
	handler    commands.SyncStoreCommandHandler
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewCatalogSyncJob creates the scheduled catalog sync.
func NewCatalogSyncJob(
	uowFactory commands.SyncUoWFactory,
	handler commands.SyncStoreCommandHandler,
	logger *slog.Logger,
) *CatalogSyncJob {
	return &CatalogSyncJob{
		uowFactory: uowFactory,
		handler:    handler,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "catalog_sync_job"),
	}
}

// Start begins the catalog sync on an hourly schedule.
func (j *CatalogSyncJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", func() {
		j.runOnce(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Catalog sync job started (running hourly)")
	return nil
}

// Stop stops the catalog sync job.
func (j *CatalogSyncJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Catalog sync job stopped")
}

func (j *CatalogSyncJob) runOnce(ctx context.Context) {
	stores, err := j.listAutoSyncStores(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Catalog sync job failed to list stores", "error", err)
		return
	}

	for _, st := range stores {
		cmd, err := commands.NewSyncStoreCommand(st.ID())
		if err != nil {
			j.logger.ErrorContext(ctx, "Catalog sync job failed to build command",
				"store_id", st.ID().String(), "error", err)
			continue
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Catalog sync failed for store",
				"store_id", st.ID().String(), "error", err)
		}
	}
}

func (j *CatalogSyncJob) listAutoSyncStores(ctx context.Context) (stores []*store.Store, err error) {
	uow := j.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stores, err = uow.StoreRepository().GetAllAutoSync(ctx)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return stores, nil
}
