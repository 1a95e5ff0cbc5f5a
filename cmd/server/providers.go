package main

import (
	"context"
	"fmt"
	"time"

	"media-publisher/internal/domain/repositories"
	"media-publisher/internal/infrastructure/metrics"
	"media-publisher/internal/infrastructure/processor"
	"media-publisher/internal/infrastructure/queue"
	infra_repo "media-publisher/internal/infrastructure/repositories"
	"media-publisher/internal/infrastructure/storage"
	"media-publisher/internal/pkg/config"
	"media-publisher/internal/usecases"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func newJobRegistry(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) repositories.JobRegistry {
	if cfg.Jobs.Registry != config.RegistryRedis {
		return infra_repo.NewInMemoryJobRepository()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Jobs.RedisAddr,
		Password: cfg.Jobs.RedisPassword,
		DB:       cfg.Jobs.RedisDB,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rdb.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("redis bağlantısı başarısız: %w", err)
			}
			log.Info("job registry on redis", zap.String("addr", cfg.Jobs.RedisAddr))
			return nil
		},
		OnStop: func(context.Context) error {
			return rdb.Close()
		},
	})
	return infra_repo.NewRedisJobRepository(rdb, cfg.Jobs.Retention)
}

func newObjectPublisher(cfg *config.Config, log *zap.Logger, m *metrics.Metrics) (repositories.ObjectPublisher, error) {
	switch cfg.Storage.Driver {
	case config.StorageBunny:
		return storage.NewBunnyStorage(cfg.Storage.Bunny, cfg.Storage.APITimeout, log, m), nil
	case config.StorageS3:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return storage.NewS3Storage(ctx, cfg.Storage.S3, log, m)
	case config.StorageMinio:
		return storage.NewMinioStorage(cfg.Storage.Minio, log, m)
	default:
		return storage.NewLocalStorage(cfg.Storage.Local.BaseDir, cfg.Storage.Local.PublicBaseURL), nil
	}
}

func newStreamPublisher(cfg *config.Config, log *zap.Logger, m *metrics.Metrics) repositories.StreamPublisher {
	var backend repositories.StreamBackend
	switch cfg.Stream.Driver {
	case config.StorageBunny:
		backend = storage.NewBunnyStream(cfg.Stream, cfg.Storage.APITimeout)
	default:
		backend = storage.NewLocalStream(cfg.Stream.Local.BaseDir, cfg.Stream.Local.PublicBaseURL)
	}

	return storage.NewStreamPublisher(backend, storage.NewRetryPolicy(cfg.Stream.RetryAttempts, cfg.Stream.RetryInterval), log, m)
}

func newImageTranscoder(cfg *config.Config, log *zap.Logger, m *metrics.Metrics) usecases.ImageTranscoder {
	return processor.NewImageTranscoder(cfg.Upload.TempDir, log, m)
}

func newVideoTranscoder(cfg *config.Config, log *zap.Logger, m *metrics.Metrics) usecases.VideoTranscoder {
	return processor.NewVideoTranscoder(cfg.Transcode, cfg.Upload.TempDir, log, m)
}

func newWorkerPool(cfg *config.Config, log *zap.Logger, m *metrics.Metrics) *queue.WorkerPool {
	return queue.NewWorkerPool(cfg.Jobs.Workers, cfg.Jobs.QueueSize, log, m)
}

type mediaParams struct {
	fx.In

	Config  *config.Config
	Images  usecases.ImageTranscoder
	Videos  usecases.VideoTranscoder
	Objects repositories.ObjectPublisher
	Stream  repositories.StreamPublisher
	Jobs    repositories.JobRegistry
	Pool    *queue.WorkerPool
	Log     *zap.Logger
	Metrics *metrics.Metrics
}

func newMediaService(p mediaParams) usecases.MediaService {
	return usecases.NewMediaService(usecases.MediaServiceDeps{
		Images:         p.Images,
		Videos:         p.Videos,
		Objects:        p.Objects,
		Stream:         p.Stream,
		Jobs:           p.Jobs,
		Queue:          p.Pool,
		PublishTimeout: p.Config.Storage.APITimeout,
		Log:            p.Log,
		Metrics:        p.Metrics,
	})
}

func newCleanupService(cfg *config.Config, jobs repositories.JobRegistry, log *zap.Logger) usecases.CleanupService {
	return usecases.NewCleanupService(cfg.Upload.TempDir, jobs, log)
}
