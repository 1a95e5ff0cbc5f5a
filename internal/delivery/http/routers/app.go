package routers

import (
	"media-publisher/internal/delivery/http/handlers"
	"media-publisher/internal/infrastructure/metrics"
	"media-publisher/internal/pkg/config"
	consts "media-publisher/pkg/constants"
	apperrors "media-publisher/pkg/errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handlers struct {
	Upload      *handlers.UploadHandler
	Job         *handlers.JobHandler
	Media       *handlers.MediaHandler
	Maintenance *handlers.MaintenanceHandler
}

func NewApp(cfg *config.Config, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "media-publisher",
		BodyLimit: int(cfg.Upload.MaxFileSize),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message, "code": codeForStatus(fe.Code)})
			}
			return apperrors.HandleError(c, log, err)
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())
	return app
}

func SetupRoutes(app *fiber.App, cfg *config.Config, m *metrics.Metrics, h Handlers) {
	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": consts.StatusOK})
	})

	if m != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	}

	if cfg.Storage.Driver == config.StorageLocal {
		app.Static("/static/images", cfg.Storage.Local.BaseDir)
	}
	if cfg.Stream.Driver == config.StorageLocal {
		app.Static("/static/videos", cfg.Stream.Local.BaseDir)
	}

	api := app.Group("/api/v1")
	SetupUploadRoutes(api, h.Upload, h.Job)
	SetupMediaRoutes(api, h.Media, h.Maintenance)
}

func codeForStatus(status int) string {
	switch {
	case status == fiber.StatusNotFound:
		return apperrors.CodeNotFound
	case status >= 500:
		return apperrors.CodeInternal
	default:
		return apperrors.CodeValidation
	}
}
