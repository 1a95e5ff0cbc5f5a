package handlers

import (
	"time"

	"media-publisher/internal/usecases"
	apperrors "media-publisher/pkg/errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type MaintenanceHandler struct {
	cleanupUC  usecases.CleanupService
	tempMaxAge time.Duration
	retention  time.Duration
	log        *zap.Logger
}

func NewMaintenanceHandler(cleanupUC usecases.CleanupService, tempMaxAge, retention time.Duration, log *zap.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{
		cleanupUC:  cleanupUC,
		tempMaxAge: tempMaxAge,
		retention:  retention,
		log:        log.With(zap.String("component", "maintenance_handler")),
	}
}

// Cleanup
//
// @Summary      Run Cleanup
// @Description  Manually runs the temp file sweep and finished-job eviction
// @Tags         Maintenance
// @Produce      json
// @Success      200  {object}  map[string]int
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /maintenance/cleanup [post]
func (h *MaintenanceHandler) Cleanup(c *fiber.Ctx) error { // manuel tetikleme için
	files, err := h.cleanupUC.CleanupOldTempFiles(h.tempMaxAge)
	if err != nil {
		return apperrors.HandleError(c, h.log, err)
	}
	jobs, err := h.cleanupUC.EvictExpiredJobs(c.UserContext(), h.retention)
	if err != nil {
		return apperrors.HandleError(c, h.log, apperrors.ErrInternal(err))
	}
	return c.JSON(fiber.Map{"removedFiles": files, "evictedJobs": jobs})
}
