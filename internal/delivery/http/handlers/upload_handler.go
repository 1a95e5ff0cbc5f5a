package handlers

import (
	"errors"
	"fmt"
	"path/filepath"

	"media-publisher/internal/domain/dto"
	"media-publisher/internal/pkg/fileutils"
	"media-publisher/internal/usecases"
	consts "media-publisher/pkg/constants"
	apperrors "media-publisher/pkg/errors"
	"media-publisher/pkg/file"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const uploadField = "media"

type UploadHandler struct {
	mediaService usecases.MediaService
	tempDir      string
	maxFileSize  int64
	log          *zap.Logger
}

func NewUploadHandler(mediaService usecases.MediaService, tempDir string, maxFileSize int64, log *zap.Logger) *UploadHandler {
	return &UploadHandler{
		mediaService: mediaService,
		tempDir:      tempDir,
		maxFileSize:  maxFileSize,
		log:          log.With(zap.String("component", "upload_handler")),
	}
}

// Upload
//
// @Summary      Upload Media
// @Description  Images are optimized and published before the response. Videos are queued and a job id is returned.
// @Tags         Upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        media  formData  file  true  "Image or video file"
// @Success      200    {object}  dto.UploadResponse
// @Failure      400    {object}  dto.ErrorResponse  "Invalid or unsupported file"
// @Failure      502    {object}  dto.ErrorResponse  "Processing or storage failure"
// @Failure      503    {object}  dto.ErrorResponse  "Job queue full"
// @Router       /upload [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		return apperrors.HandleError(c, h.log, apperrors.ErrValidation(fmt.Errorf("form field %q: %w", uploadField, err)))
	}
	if fh.Size <= 0 {
		return apperrors.HandleError(c, h.log, apperrors.ErrValidation(errors.New("empty file")))
	}
	// With BodyLimit == maxFileSize fiber answers 413 first; this only fires
	// when the handler is given a tighter limit than the app.
	if fh.Size > h.maxFileSize {
		return apperrors.HandleError(c, h.log, apperrors.ErrValidation(fmt.Errorf("file is %d bytes, limit %d", fh.Size, h.maxFileSize)))
	}

	mimeType, err := file.ValidateUpload(fh.Filename, fh.Header.Get(fiber.HeaderContentType))
	if err != nil {
		return apperrors.HandleError(c, h.log, apperrors.ErrUnsupportedMedia(err))
	}

	tmpPath := filepath.Join(h.tempDir, uuid.NewString()+"-"+fileutils.SanitizeName(fh.Filename))
	if err := c.SaveFile(fh, tmpPath); err != nil {
		_ = fileutils.RemoveFiles(tmpPath)
		return apperrors.HandleError(c, h.log, apperrors.ErrInternal(fmt.Errorf("save upload: %w", err)))
	}

	res, err := h.mediaService.Upload(c.UserContext(), dto.UploadDescriptor{
		Path:         tmpPath,
		OriginalName: fh.Filename,
		Size:         fh.Size,
		MimeType:     mimeType,
		Category:     file.CategoryOf(mimeType),
	})
	if err != nil {
		return apperrors.HandleError(c, h.log, err)
	}

	resp := dto.UploadResponse{
		Success:      true,
		Type:         res.Kind,
		OriginalName: fh.Filename,
	}
	if res.Kind == consts.MediaImage {
		resp.CdnURL = res.AssetURL
		resp.ThumbnailURL = res.ThumbnailURL
	} else {
		resp.JobID = res.JobID
		resp.Status = res.Status
		resp.Message = res.Message
	}
	return c.JSON(resp)
}
