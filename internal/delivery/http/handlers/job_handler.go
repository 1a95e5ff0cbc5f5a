package handlers

import (
	"media-publisher/internal/usecases"
	apperrors "media-publisher/pkg/errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type JobHandler struct {
	statusService usecases.StatusService
	log           *zap.Logger
}

func NewJobHandler(statusService usecases.StatusService, log *zap.Logger) *JobHandler {
	return &JobHandler{statusService: statusService, log: log.With(zap.String("component", "job_handler"))}
}

// GetJob
//
// @Summary      Get Job Status
// @Description  Current state of a background video job. Unknown ids answer with status "not_found".
// @Tags         Jobs
// @Produce      json
// @Param        jobId  path      string  true  "Job ID"
// @Success      200    {object}  dto.JobStatusResponse
// @Failure      500    {object}  dto.ErrorResponse
// @Router       /job/{jobId} [get]
func (h *JobHandler) GetJob(c *fiber.Ctx) error {
	status, err := h.statusService.JobStatus(c.UserContext(), c.Params("jobId"))
	if err != nil {
		return apperrors.HandleError(c, h.log, err)
	}
	return c.JSON(status)
}
