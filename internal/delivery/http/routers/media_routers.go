package routers

import (
	"media-publisher/internal/delivery/http/handlers"

	"github.com/gofiber/fiber/v2"
)

func SetupMediaRoutes(api fiber.Router, mediaHandler *handlers.MediaHandler, maintenanceHandler *handlers.MaintenanceHandler) {
	api.Get("/media", mediaHandler.ListMedia)
	api.Post("/maintenance/cleanup", maintenanceHandler.Cleanup)
}
