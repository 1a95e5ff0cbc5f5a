package usecases

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"media-publisher/internal/domain/repositories"
	apperrors "media-publisher/pkg/errors"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type CleanupService interface {
	CleanupOldTempFiles(maxAge time.Duration) (int, error)
	EvictExpiredJobs(ctx context.Context, retention time.Duration) (int, error)
}

type cleanupService struct {
	tempDir string
	jobs    repositories.JobRegistry
	log     *zap.Logger
	now     func() time.Time
}

func NewCleanupService(tempDir string, jobs repositories.JobRegistry, log *zap.Logger) CleanupService {
	return &cleanupService{
		tempDir: tempDir,
		jobs:    jobs,
		log:     log.With(zap.String("component", "cleanup")),
		now:     time.Now,
	}
}

// CleanupOldTempFiles removes temp entries older than maxAge left behind by
// crashed requests. It keeps going after a failed removal.
func (s *cleanupService) CleanupOldTempFiles(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.tempDir)
	if err != nil {
		return 0, apperrors.ErrInternal(err)
	}

	now := s.now()
	removed := 0
	var errs error
	for _, entry := range entries {
		p := filepath.Join(s.tempDir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			if !os.IsNotExist(err) {
				errs = multierr.Append(errs, err)
			}
			continue
		}
		if now.Sub(info.ModTime()) <= maxAge {
			continue
		}
		if err := os.RemoveAll(p); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		removed++
		s.log.Info("removed old temp entry", zap.String("path", p))
	}
	return removed, errs
}

func (s *cleanupService) EvictExpiredJobs(ctx context.Context, retention time.Duration) (int, error) {
	n, err := s.jobs.EvictTerminalBefore(ctx, s.now().Add(-retention))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info("evicted finished jobs", zap.Int("count", n))
	}
	return n, nil
}
