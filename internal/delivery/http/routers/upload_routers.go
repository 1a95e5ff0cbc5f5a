package routers

import (
	"media-publisher/internal/delivery/http/handlers"

	"github.com/gofiber/fiber/v2"
)

func SetupUploadRoutes(api fiber.Router, uploadHandler *handlers.UploadHandler, jobHandler *handlers.JobHandler) {
	api.Post("/upload", uploadHandler.Upload)
	api.Get("/job/:jobId", jobHandler.GetJob)
}
