package usecases

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"media-publisher/internal/domain/dto"
	"media-publisher/internal/domain/entities"
	"media-publisher/internal/domain/repositories"
	"media-publisher/internal/infrastructure/metrics"
	"media-publisher/internal/infrastructure/queue"
	"media-publisher/internal/pkg/fileutils"
	consts "media-publisher/pkg/constants"
	apperrors "media-publisher/pkg/errors"
	"media-publisher/pkg/file"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type ImageTranscoder interface {
	Transcode(ctx context.Context, inputPath string, size int64) (*dto.ImageOutput, error)
}

type VideoTranscoder interface {
	Transcode(ctx context.Context, inputPath string) (string, error)
}

type JobQueue interface {
	Submit(job queue.Job) error
}

// MediaService decides how an accepted upload is processed: images inline,
// videos as background jobs.
type MediaService interface {
	Upload(ctx context.Context, d dto.UploadDescriptor) (*dto.UploadResult, error)
	ProcessVideoJob(ctx context.Context, job queue.Job) error
	ListMedia(ctx context.Context) (*dto.MediaListResponse, error)
}

type MediaServiceDeps struct {
	Images         ImageTranscoder
	Videos         VideoTranscoder
	Objects        repositories.ObjectPublisher
	Stream         repositories.StreamPublisher
	Jobs           repositories.JobRegistry
	Queue          JobQueue
	PublishTimeout time.Duration
	Log            *zap.Logger
	Metrics        *metrics.Metrics
}

type mediaService struct {
	images         ImageTranscoder
	videos         VideoTranscoder
	objects        repositories.ObjectPublisher
	stream         repositories.StreamPublisher
	jobs           repositories.JobRegistry
	queue          JobQueue
	publishTimeout time.Duration
	log            *zap.Logger
	metrics        *metrics.Metrics
	now            func() time.Time
}

func NewMediaService(deps MediaServiceDeps) MediaService {
	return &mediaService{
		images:         deps.Images,
		videos:         deps.Videos,
		objects:        deps.Objects,
		stream:         deps.Stream,
		jobs:           deps.Jobs,
		queue:          deps.Queue,
		publishTimeout: deps.PublishTimeout,
		log:            deps.Log.With(zap.String("component", "media_service")),
		metrics:        deps.Metrics,
		now:            time.Now,
	}
}

func (s *mediaService) Upload(ctx context.Context, d dto.UploadDescriptor) (*dto.UploadResult, error) {
	category := file.CategoryOf(d.MimeType)
	if category == "" || (d.Category != "" && d.Category != category) {
		s.removeTemp(d.Path)
		err := apperrors.ErrUnsupportedMedia(fmt.Errorf("type %q (declared %q) is neither image nor video", d.MimeType, d.Category))
		s.metrics.Upload("unknown", err)
		return nil, err
	}

	var (
		res *dto.UploadResult
		err error
	)
	switch category {
	case consts.MediaImage:
		res, err = s.uploadImage(ctx, d)
	default:
		res, err = s.uploadVideo(ctx, d)
	}
	s.metrics.Upload(category, err)
	return res, err
}

func (s *mediaService) uploadImage(ctx context.Context, d dto.UploadDescriptor) (*dto.UploadResult, error) {
	defer s.removeTemp(d.Path)

	out, err := s.images.Transcode(ctx, d.Path, d.Size)
	if err != nil {
		s.log.Warn("image transcode failed", zap.String("file", d.OriginalName), zap.Error(err))
		return nil, apperrors.ErrTranscode(err)
	}
	defer s.removeTemp(out.FullPath, out.ThumbPath)

	if s.publishTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.publishTimeout)
		defer cancel()
	}

	var fullURL, thumbURL string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.objects.Publish(gctx, out.FullPath, filepath.Base(out.FullPath))
		fullURL = u
		return err
	})
	g.Go(func() error {
		u, err := s.objects.Publish(gctx, out.ThumbPath, filepath.Base(out.ThumbPath))
		thumbURL = u
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Warn("image publish failed", zap.String("file", d.OriginalName), zap.Error(err))
		return nil, asPublishError(err)
	}

	s.log.Info("image published",
		zap.String("file", d.OriginalName),
		zap.Int("quality", out.Quality),
		zap.String("url", fullURL),
	)
	return &dto.UploadResult{
		Kind:         consts.MediaImage,
		AssetURL:     fullURL,
		ThumbnailURL: thumbURL,
	}, nil
}

func (s *mediaService) uploadVideo(ctx context.Context, d dto.UploadDescriptor) (*dto.UploadResult, error) {
	id := uuid.NewString()
	job := entities.NewJob(id, d.OriginalName, consts.MsgJobQueued, s.now())
	if err := s.jobs.Create(ctx, job); err != nil {
		s.removeTemp(d.Path)
		return nil, apperrors.ErrInternal(fmt.Errorf("register job: %w", err))
	}
	s.metrics.JobTransition(string(entities.JobQueued))

	err := s.queue.Submit(queue.Job{
		ID:         id,
		Type:       queue.JobVideoPublish,
		Filename:   d.OriginalName,
		FilePath:   d.Path,
		Size:       d.Size,
		EnqueuedAt: s.now(),
	})
	if err != nil {
		s.failJob(id, err)
		s.removeTemp(d.Path)
		return nil, apperrors.ErrServiceBusy(err)
	}

	s.log.Info("video job queued", zap.String("job_id", id), zap.String("file", d.OriginalName), zap.Int64("size", d.Size))
	return &dto.UploadResult{
		Kind:    consts.MediaVideo,
		JobID:   id,
		Status:  consts.StatusProcessing,
		Message: consts.MsgVideoAccepted,
	}, nil
}

func (s *mediaService) removeTemp(paths ...string) {
	if err := fileutils.RemoveFiles(paths...); err != nil {
		s.log.Warn("temp files not removed", zap.Strings("paths", paths), zap.Error(err))
	}
}

// asPublishError keeps typed storage errors and wraps anything else.
func asPublishError(err error) error {
	switch apperrors.CodeOf(err) {
	case apperrors.CodePublish, apperrors.CodeRemoteRejected:
		return err
	}
	return apperrors.ErrPublish(err)
}
