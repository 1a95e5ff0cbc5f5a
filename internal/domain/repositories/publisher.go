package repositories

import (
	"context"

	"media-publisher/internal/domain/dto"
)

// ObjectPublisher uploads single files to an object store.
type ObjectPublisher interface {
	Publish(ctx context.Context, localPath, remoteName string) (string, error)
	List(ctx context.Context) ([]dto.RemoteObject, error)
}

// StreamBackend is one video hosting service. CreateResource allocates an
// empty remote video; UploadBody fills it.
type StreamBackend interface {
	CreateResource(ctx context.Context, title string) (string, error)
	UploadBody(ctx context.Context, resourceID, localPath string) error
	List(ctx context.Context) ([]dto.VideoItem, error)
	PlaybackURL(resourceID string) string
	PosterURL(resourceID string) string
}

// StreamPublisher publishes a video file and returns the remote resource id.
type StreamPublisher interface {
	Publish(ctx context.Context, localPath, title string) (string, error)
	List(ctx context.Context) ([]dto.VideoItem, error)
	PlaybackURL(resourceID string) string
	PosterURL(resourceID string) string
}
