package routers

import (
	"context"
	"fmt"
	"time"

	"media-publisher/internal/pkg/config"
	"media-publisher/internal/usecases"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartMaintenanceCron schedules temp-file cleanup and job eviction on
// cfg.Jobs.SweepSchedule (seconds field included). The caller stops it.
func StartMaintenanceCron(cfg *config.Config, cleanupUC usecases.CleanupService, log *zap.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds())

	if _, err := c.AddFunc(cfg.Jobs.SweepSchedule, maintenanceTask(cleanupUC, cfg.Upload.TempMaxAge, cfg.Jobs.Retention, log)); err != nil {
		return nil, fmt.Errorf("invalid maintenance schedule %q: %w", cfg.Jobs.SweepSchedule, err)
	}
	c.Start() // cron job'u başlatır
	return c, nil
}

func maintenanceTask(cleanupUC usecases.CleanupService, tempMaxAge, retention time.Duration, log *zap.Logger) func() {
	return func() {
		removed, err := cleanupUC.CleanupOldTempFiles(tempMaxAge)
		if err != nil {
			log.Warn("Error cleaning up old temp files", zap.Error(err))
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		evicted, err := cleanupUC.EvictExpiredJobs(ctx, retention)
		if err != nil {
			log.Warn("Error evicting expired jobs", zap.Error(err))
		}

		if removed > 0 || evicted > 0 {
			log.Info("maintenance sweep", zap.Int("removed_files", removed), zap.Int("evicted_jobs", evicted))
		}
	}
}
