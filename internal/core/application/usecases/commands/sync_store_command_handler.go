package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// SyncStoreCommandHandler copies a store's active catalog from the source
// platform into the destination backend.
//
// Business rules:
//   - The store's credentials must be complete before anything is fetched
//   - Only one sync may run per store; a second request is rejected while
//     the first is marked Syncing
//   - Per-product failures are counted and logged, the batch continues
//   - The final store state is Completed (with counters) or Failed when the
//     source listing itself breaks off
type SyncStoreCommandHandler struct {
	uowFactory  SyncUoWFactory
	source      ports.ProductSource
	destination ports.ProductDestination
	transformer services.ProductTransformer
	logger      *slog.Logger
}

// NewSyncStoreCommandHandler creates a handler for catalog sync.
func NewSyncStoreCommandHandler(
	uowFactory SyncUoWFactory,
	source ports.ProductSource,
	destination ports.ProductDestination,
	logger *slog.Logger,
) SyncStoreCommandHandler {
	return SyncStoreCommandHandler{
		uowFactory:  uowFactory,
		source:      source,
		destination: destination,
		transformer: services.NewProductTransformer(),
		logger:      logger.With("component", "sync_store"),
	}
}

// Handle runs the sync end to end. The Syncing marker is committed before
// the first fetch so concurrent requests are rejected immediately.
func (h *SyncStoreCommandHandler) Handle(ctx context.Context, cmd SyncStoreCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	st, err := h.beginSync(ctx, cmd.StoreID())
	if err != nil {
		return err
	}

	succeeded, failed, syncErr := h.syncCatalog(ctx, st)

	if finishErr := h.finishSync(ctx, cmd.StoreID(), succeeded, failed, syncErr); finishErr != nil {
		return finishErr
	}

	return syncErr
}

// beginSync validates the store and commits the Syncing marker.
func (h *SyncStoreCommandHandler) beginSync(ctx context.Context, storeID kernel.UUID) (*store.Store, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	st, err := uow.StoreRepository().Get(ctx, storeID)
	if err != nil {
		return nil, err
	}

	if err = st.ValidateSyncConfig(); err != nil {
		return nil, err
	}

	if err = st.BeginSync(); err != nil {
		return nil, err
	}

	if err = uow.StoreRepository().Update(ctx, st); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return st, nil
}

// syncCatalog walks the paginated source listing and upserts each product.
func (h *SyncStoreCommandHandler) syncCatalog(ctx context.Context, st *store.Store) (succeeded, failed int, err error) {
	pageToken := ""
	for {
		page, listErr := h.source.ListActiveProducts(ctx, st, pageToken)
		if listErr != nil {
			return succeeded, failed, listErr
		}

		for _, src := range page.Products {
			if syncErr := h.syncProduct(ctx, st, src); syncErr != nil {
				failed++
				h.logger.WarnContext(ctx, "product sync failed",
					"storeId", st.ID().String(),
					"sourceProductId", src.ID,
					"error", syncErr)
				continue
			}
			succeeded++
		}

		if page.NextPageToken == "" {
			return succeeded, failed, nil
		}
		pageToken = page.NextPageToken
	}
}

// syncProduct transforms one product, upserts it at the destination and
// refreshes the mapping, each product in its own transaction.
func (h *SyncStoreCommandHandler) syncProduct(ctx context.Context, st *store.Store, src product.SourceProduct) error {
	dst, err := h.transformer.Transform(src)
	if err != nil {
		return err
	}

	destinationID, err := h.upsertDestination(ctx, st, dst)
	if err != nil {
		return err
	}

	return h.upsertMapping(ctx, st.ID(), src.ID, destinationID)
}

func (h *SyncStoreCommandHandler) upsertDestination(ctx context.Context, st *store.Store, dst product.DestinationProduct) (string, error) {
	existingID, err := h.destination.GetIDByHandle(ctx, st, dst.Handle)
	switch {
	case err == nil:
		if err = h.destination.Update(ctx, st, existingID, dst); err != nil {
			return "", err
		}
		return existingID, nil
	case errors.Is(err, errs.ErrObjectNotFound):
		return h.destination.Create(ctx, st, dst)
	default:
		return "", err
	}
}

func (h *SyncStoreCommandHandler) upsertMapping(ctx context.Context, storeID kernel.UUID, sourceProductID, destinationID string) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now()
	mapping, err := uow.MappingRepository().GetByStoreAndSource(ctx, storeID, sourceProductID)
	switch {
	case err == nil:
		if err = mapping.Refresh(destinationID, now); err != nil {
			return err
		}
		if err = uow.MappingRepository().Update(ctx, mapping); err != nil {
			return err
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		mapping, err = product.NewMapping(kernel.NewUUID(), storeID, sourceProductID, destinationID, now)
		if err != nil {
			return err
		}
		if err = uow.MappingRepository().Add(ctx, mapping); err != nil {
			return err
		}
	default:
		return err
	}

	return uow.Commit(ctx)
}

// finishSync records the terminal sync state regardless of how the batch went.
func (h *SyncStoreCommandHandler) finishSync(ctx context.Context, storeID kernel.UUID, succeeded, failed int, syncErr error) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	st, err := uow.StoreRepository().Get(ctx, storeID)
	if err != nil {
		return err
	}

	now := time.Now()
	if syncErr != nil {
		err = st.FailSync(syncErr.Error(), now)
	} else {
		err = st.CompleteSync(succeeded, failed, now)
	}
	if err != nil {
		return err
	}

	if err = uow.StoreRepository().Update(ctx, st); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
