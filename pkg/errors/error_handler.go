package errors

import (
	stderrors "errors"

	"media-publisher/pkg/errors/i18n"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// StatusFor maps an error code to the HTTP status returned to clients.
func StatusFor(code string) int {
	switch code {
	case CodeValidation, CodeUnsupportedMedia:
		return fiber.StatusBadRequest
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeTranscode, CodePublish, CodeRemoteRejected:
		return fiber.StatusBadGateway
	case CodeServiceBusy:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func HandleError(c *fiber.Ctx, log *zap.Logger, err error) error {
	if err == nil {
		return nil
	}

	var ue *UploadError
	if stderrors.As(err, &ue) {
		// orijinal hata sadece loglanır
		log.Warn("request failed",
			zap.String("code", ue.Code),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(StatusFor(ue.Code)).JSON(fiber.Map{
			"error": i18n.T(ue.Code),
			"code":  ue.Code,
		})
	}

	log.Error("unexpected error", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": i18n.T(CodeInternal),
		"code":  CodeInternal,
	})
}
