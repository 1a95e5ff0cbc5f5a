package usecases

import (
	"context"
	"fmt"

	"media-publisher/internal/domain/dto"
	"media-publisher/internal/domain/entities"
	"media-publisher/internal/domain/repositories"
	consts "media-publisher/pkg/constants"
	apperrors "media-publisher/pkg/errors"
)

type StatusService interface {
	JobStatus(ctx context.Context, jobID string) (*dto.JobStatusResponse, error)
}

type statusService struct {
	jobs   repositories.JobRegistry
	stream repositories.StreamPublisher
}

func NewStatusService(jobs repositories.JobRegistry, stream repositories.StreamPublisher) StatusService {
	return &statusService{jobs: jobs, stream: stream}
}

// JobStatus never reports an unknown id as an error; it answers not_found.
func (s *statusService) JobStatus(ctx context.Context, jobID string) (*dto.JobStatusResponse, error) {
	job, ok, err := s.jobs.Lookup(ctx, jobID)
	if err != nil {
		return nil, apperrors.ErrInternal(fmt.Errorf("lookup job %s: %w", jobID, err))
	}
	if !ok {
		return &dto.JobStatusResponse{Status: consts.StatusNotFound, Message: consts.MsgJobNotFound}, nil
	}

	resp := &dto.JobStatusResponse{Status: string(job.Status), Message: job.Message}
	if job.Status == entities.JobCompleted {
		resp.VideoID = job.RemoteReference
		resp.PlaybackURL = s.stream.PlaybackURL(job.RemoteReference)
		resp.PosterURL = s.stream.PosterURL(job.RemoteReference)
	}
	return resp, nil
}
