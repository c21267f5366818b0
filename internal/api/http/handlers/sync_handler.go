package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/internship-service/internal/observability"
	"github.com/spec-kit/internship-service/internal/service"
)

// SyncHandler lets admins trigger and inspect roster reconciliation.
type SyncHandler struct {
	sync    *service.SyncService
	metrics *observability.Metrics
}

// NewSyncHandler constructs handler.
func NewSyncHandler(syncService *service.SyncService, metrics *observability.Metrics) *SyncHandler {
	return &SyncHandler{sync: syncService, metrics: metrics}
}

// Trigger handles POST /api/admin/sync. It runs a pass inline and reports the
// outcome.
func (h *SyncHandler) Trigger(c *fiber.Ctx) error {
	result, err := h.sync.Run(c.Context())
	if err != nil {
		if errors.Is(err, service.ErrSyncInProgress) {
			return fiber.NewError(http.StatusConflict, err.Error())
		}
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"synced":  result.Synced,
		"skipped": result.Skipped,
		"errors":  result.Errors,
	}})
}

// Status handles GET /api/admin/sync/status with lifetime counters.
func (h *SyncHandler) Status(c *fiber.Ctx) error {
	passes, synced, skipped, errored := h.metrics.SyncTotals()
	return c.JSON(fiber.Map{"data": fiber.Map{
		"passes":        passes,
		"total_synced":  synced,
		"total_skipped": skipped,
		"total_errors":  errored,
	}})
}
