package storage

import (
	"context"
	"fmt"

	"media-publisher/internal/domain/dto"
	"media-publisher/internal/domain/repositories"
	"media-publisher/internal/infrastructure/metrics"
	"media-publisher/internal/pkg/fileutils"
	apperrors "media-publisher/pkg/errors"

	"go.uber.org/zap"
)

// StreamPublisher runs the two-step video publish against a backend: the
// create call is retried by the policy, the body upload is attempted once.
type StreamPublisher struct {
	backend repositories.StreamBackend
	retry   RetryPolicy
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewStreamPublisher(backend repositories.StreamBackend, retry RetryPolicy, log *zap.Logger, m *metrics.Metrics) *StreamPublisher {
	return &StreamPublisher{
		backend: backend,
		retry:   retry,
		log:     log.With(zap.String("component", "stream_publisher")),
		metrics: m,
	}
}

func (p *StreamPublisher) Publish(ctx context.Context, localPath, title string) (string, error) {
	policy := p.retry
	policy.OnRetry = func(attempt int, err error) {
		p.log.Warn("create video failed, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", policy.MaxAttempts),
			zap.String("error", fileutils.StripControl(err.Error())),
		)
	}

	var resourceID string
	err := policy.Do(ctx, func(ctx context.Context) error {
		id, err := p.backend.CreateResource(ctx, title)
		p.metrics.PublishAttempt("stream_create", err)
		if err != nil {
			return err
		}
		resourceID = id
		return nil
	})
	if err != nil {
		p.log.Error("create video failed", zap.String("error", fileutils.StripControl(err.Error())))
		return "", wrapPublish(err)
	}

	if err := p.backend.UploadBody(ctx, resourceID, localPath); err != nil {
		p.metrics.PublishAttempt("stream_upload", err)
		// TODO: delete the empty remote video once the backend exposes a delete call.
		p.log.Error("video upload failed, remote resource left empty",
			zap.String("resource_id", resourceID),
			zap.String("error", fileutils.StripControl(err.Error())),
		)
		return "", wrapPublish(fmt.Errorf("upload body of %s: %w", resourceID, err))
	}
	p.metrics.PublishAttempt("stream_upload", nil)

	p.log.Info("video published", zap.String("resource_id", resourceID))
	return resourceID, nil
}

func (p *StreamPublisher) List(ctx context.Context) ([]dto.VideoItem, error) {
	return p.backend.List(ctx)
}

func (p *StreamPublisher) PlaybackURL(resourceID string) string {
	return p.backend.PlaybackURL(resourceID)
}

func (p *StreamPublisher) PosterURL(resourceID string) string {
	return p.backend.PosterURL(resourceID)
}

// wrapPublish keeps RemoteRejected errors as they are and marks everything
// else as a publish failure.
func wrapPublish(err error) error {
	if apperrors.IsCode(err, apperrors.CodeRemoteRejected) || apperrors.IsCode(err, apperrors.CodePublish) {
		return err
	}
	return apperrors.ErrPublish(err)
}
