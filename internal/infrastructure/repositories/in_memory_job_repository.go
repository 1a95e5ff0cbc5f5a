package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"media-publisher/internal/domain/entities"
)

type InMemoryJobRepository struct {
	mu   sync.RWMutex
	data map[string]*entities.Job
	now  func() time.Time
}

func NewInMemoryJobRepository() *InMemoryJobRepository {
	return &InMemoryJobRepository{
		data: make(map[string]*entities.Job),
		now:  time.Now,
	}
}

func (r *InMemoryJobRepository) Create(_ context.Context, job *entities.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.data[job.ID]; exists {
		return fmt.Errorf("job %s already exists", job.ID)
	}
	r.data[job.ID] = job.Clone()
	return nil
}

func (r *InMemoryJobRepository) Update(_ context.Context, id string, t entities.Transition) (*entities.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.data[id]
	if !ok {
		return nil, fmt.Errorf("job %s not found", id)
	}
	if err := job.Apply(t, r.now()); err != nil {
		return nil, err
	}
	return job.Clone(), nil
}

func (r *InMemoryJobRepository) Lookup(_ context.Context, id string) (*entities.Job, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.data[id]
	if !ok {
		return nil, false, nil
	}
	return job.Clone(), true, nil
}

func (r *InMemoryJobRepository) EvictTerminalBefore(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for id, job := range r.data {
		if job.Status.Terminal() && job.UpdatedAt.Before(cutoff) {
			delete(r.data, id)
			evicted++
		}
	}
	return evicted, nil
}

// Len reports how many jobs are held, terminal ones included.
func (r *InMemoryJobRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}
