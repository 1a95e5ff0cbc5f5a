package main

import (
	"context"
	"log"

	_ "media-publisher/docs"

	"media-publisher/internal/delivery/http/handlers"
	"media-publisher/internal/delivery/http/routers"
	"media-publisher/internal/infrastructure/metrics"
	"media-publisher/internal/infrastructure/queue"
	"media-publisher/internal/pkg/config"
	"media-publisher/internal/pkg/logger"
	"media-publisher/internal/usecases"
	"media-publisher/pkg/errors/i18n"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// @title        Media Publisher API
// @version      1.0
// @description  Accepts image and video uploads, transcodes them and publishes to object storage and a streaming library.
// @BasePath     /api/v1
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config yüklenemedi: %v", err)
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("logger oluşturulamadı: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := i18n.Load(cfg.Locale); err != nil {
		zl.Warn("locale not available, falling back to en", zap.String("locale", cfg.Locale), zap.Error(err))
		_ = i18n.Load("en")
	}

	fx.New(
		fx.Supply(cfg, zl),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Named("fx")}
		}),
		fx.Provide(
			metrics.New,
			newJobRegistry,
			newObjectPublisher,
			newStreamPublisher,
			newImageTranscoder,
			newVideoTranscoder,
			newWorkerPool,
			newMediaService,
			usecases.NewStatusService,
			newCleanupService,
			newHandlers,
			routers.NewApp,
		),
		fx.Invoke(
			routers.SetupRoutes,
			startWorkers,
			startMaintenance,
			startServer,
		),
	).Run()
}

func newHandlers(cfg *config.Config, media usecases.MediaService, status usecases.StatusService, cleanup usecases.CleanupService, log *zap.Logger) routers.Handlers {
	return routers.Handlers{
		Upload:      handlers.NewUploadHandler(media, cfg.Upload.TempDir, cfg.Upload.MaxFileSize, log),
		Job:         handlers.NewJobHandler(status, log),
		Media:       handlers.NewMediaHandler(media, log),
		Maintenance: handlers.NewMaintenanceHandler(cleanup, cfg.Upload.TempMaxAge, cfg.Jobs.Retention, log),
	}
}

// startWorkers begins draining the video queue. On stop the pool gets the
// remaining shutdown budget to finish in-flight jobs.
func startWorkers(lc fx.Lifecycle, pool *queue.WorkerPool, media usecases.MediaService) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			pool.Start(media.ProcessVideoJob)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return pool.Shutdown(ctx)
		},
	})
}

func startMaintenance(lc fx.Lifecycle, cfg *config.Config, cleanup usecases.CleanupService, log *zap.Logger) {
	var c *cron.Cron
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			var err error
			c, err = routers.StartMaintenanceCron(cfg, cleanup, log)
			return err
		},
		OnStop: func(ctx context.Context) error {
			select {
			case <-c.Stop().Done():
			case <-ctx.Done():
			}
			return nil
		},
	})
}

func startServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config, log *zap.Logger, shutdowner fx.Shutdowner) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Info("Server starting", zap.String("addr", cfg.Addr()))
			go func() {
				if err := app.Listen(cfg.Addr()); err != nil {
					log.Error("Server başlatılamadı", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutdown sinyali alındı, server kapatılıyor...")
			return app.ShutdownWithContext(ctx)
		},
	})
}
