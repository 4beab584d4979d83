package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
)

type syncStatusResponse struct {
	StoreID       string  `json:"store_id"`
	StoreName     string  `json:"store_name"`
	Status        string  `json:"status"`
	LastSyncedAt  *string `json:"last_synced_at"`
	LastSyncError string  `json:"last_sync_error,omitempty"`
	Succeeded     int     `json:"succeeded"`
	Failed        int     `json:"failed"`
}

// TriggerSync handles POST /api/v1/stores/:id/sync. The sync runs inline;
// callers poll GET for progress.
func (s *Server) TriggerSync(ctx echo.Context) error {
	storeID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewSyncStoreCommand(storeID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.syncStoreHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusAccepted)
}

// GetSyncStatus handles GET /api/v1/stores/:id/sync.
func (s *Server) GetSyncStatus(ctx echo.Context) error {
	storeID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetSyncStatusQuery(storeID)
	if err != nil {
		return s.fail(ctx, err)
	}

	detail, err := s.getSyncStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, syncStatusResponse{
		StoreID:       detail.StoreID.String(),
		StoreName:     detail.StoreName,
		Status:        detail.Status,
		LastSyncedAt:  formatTimePtr(detail.LastSyncedAt),
		LastSyncError: detail.LastSyncError,
		Succeeded:     detail.Succeeded,
		Failed:        detail.Failed,
	})
}
