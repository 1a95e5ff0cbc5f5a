package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"media-publisher/internal/domain/entities"
	"media-publisher/internal/infrastructure/queue"
	"media-publisher/internal/pkg/fileutils"
	consts "media-publisher/pkg/constants"

	"go.uber.org/zap"
)

const (
	maxJobMessage  = 1024
	failureTimeout = 5 * time.Second
)

// ProcessVideoJob runs a queued video through transcode and stream publish.
// Every exit path, including a panic, leaves the job completed or failed
// and removes the temp files it owns.
func (s *mediaService) ProcessVideoJob(ctx context.Context, qj queue.Job) (err error) {
	log := s.log.With(zap.String("job_id", qj.ID))
	var output string

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
			log.Error("video job panicked", zap.Any("panic", r))
			s.failJob(qj.ID, err)
		}
		s.removeTemp(qj.FilePath, output)
	}()

	if ctx.Err() != nil {
		err = errors.New(consts.MsgServiceStopped)
		s.failJob(qj.ID, err)
		return err
	}

	if err = s.transition(ctx, qj.ID, entities.Transition{To: entities.JobProcessing, Message: consts.MsgJobProcessing}); err != nil {
		s.failJob(qj.ID, err)
		return err
	}

	output, err = s.videos.Transcode(ctx, qj.FilePath)
	s.removeTemp(qj.FilePath)
	if err != nil {
		log.Warn("video transcode failed", zap.Error(err))
		s.failJob(qj.ID, err)
		return err
	}

	if err = s.transition(ctx, qj.ID, entities.Transition{To: entities.JobUploading, Message: consts.MsgJobUploading}); err != nil {
		s.failJob(qj.ID, err)
		return err
	}

	ref, err := s.stream.Publish(ctx, output, qj.Filename)
	if err != nil {
		log.Warn("video publish failed", zap.Error(err))
		s.failJob(qj.ID, err)
		return err
	}

	if err = s.transition(ctx, qj.ID, entities.Transition{
		To:              entities.JobCompleted,
		Message:         consts.MsgJobCompleted,
		RemoteReference: ref,
	}); err != nil {
		s.failJob(qj.ID, err)
		return err
	}

	log.Info("video job completed", zap.String("video_id", ref), zap.Duration("total", s.now().Sub(qj.EnqueuedAt)))
	return nil
}

func (s *mediaService) transition(ctx context.Context, id string, t entities.Transition) error {
	if _, err := s.jobs.Update(ctx, id, t); err != nil {
		return fmt.Errorf("job %s -> %s: %w", id, t.To, err)
	}
	s.metrics.JobTransition(string(t.To))
	return nil
}

// failJob records err on the job. It uses its own context so it still works
// after the job's context was cancelled.
func (s *mediaService) failJob(id string, cause error) {
	ctx, cancel := context.WithTimeout(context.Background(), failureTimeout)
	defer cancel()

	msg := fileutils.Truncate(fileutils.StripControl(cause.Error()), maxJobMessage)
	if _, err := s.jobs.Update(ctx, id, entities.Transition{To: entities.JobFailed, Message: msg}); err != nil {
		if errors.Is(err, entities.ErrInvalidTransition) {
			s.log.Debug("job already terminal", zap.String("job_id", id), zap.Error(err))
			return
		}
		s.log.Error("job could not be marked failed", zap.String("job_id", id), zap.Error(err))
		return
	}
	s.metrics.JobTransition(string(entities.JobFailed))
}
