package repositories

import (
	"context"
	"time"

	"media-publisher/internal/domain/entities"
)

// JobRegistry is the single authority for video job state. Lookup of an
// unknown id returns (nil, false, nil).
type JobRegistry interface {
	Create(ctx context.Context, job *entities.Job) error
	Update(ctx context.Context, id string, t entities.Transition) (*entities.Job, error)
	Lookup(ctx context.Context, id string) (*entities.Job, bool, error)
	// EvictTerminalBefore drops completed/failed jobs last updated before cutoff.
	EvictTerminalBefore(ctx context.Context, cutoff time.Time) (int, error)
}
