package handlers

import (
	"media-publisher/internal/usecases"
	apperrors "media-publisher/pkg/errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type MediaHandler struct {
	mediaService usecases.MediaService
	log          *zap.Logger
}

func NewMediaHandler(mediaService usecases.MediaService, log *zap.Logger) *MediaHandler {
	return &MediaHandler{mediaService: mediaService, log: log.With(zap.String("component", "media_handler"))}
}

// ListMedia
//
// @Summary      List Media
// @Description  Published images (with thumbnails when present) and videos
// @Tags         Media
// @Produce      json
// @Success      200  {object}  dto.MediaListResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /media [get]
func (h *MediaHandler) ListMedia(c *fiber.Ctx) error {
	list, err := h.mediaService.ListMedia(c.UserContext())
	if err != nil {
		return apperrors.HandleError(c, h.log, err)
	}
	return c.JSON(list)
}
