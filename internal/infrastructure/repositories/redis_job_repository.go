package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"media-publisher/internal/domain/entities"

	"github.com/redis/go-redis/v9"
)

const jobKeyPrefix = "job:"

// RedisJobRepository keeps each job in a hash "job:<id>". Keys expire after
// the retention window, refreshed on every write.
type RedisJobRepository struct {
	rdb       *redis.Client
	retention time.Duration
	now       func() time.Time
}

func NewRedisJobRepository(rdb *redis.Client, retention time.Duration) *RedisJobRepository {
	return &RedisJobRepository{rdb: rdb, retention: retention, now: time.Now}
}

func jobKey(id string) string {
	return jobKeyPrefix + id
}

// Create writes the whole hash and its TTL in one MULTI, guarded by WATCH
// on the key, so a failed create never leaves a partial job behind.
func (r *RedisJobRepository) Create(ctx context.Context, job *entities.Job) error {
	key := jobKey(job.ID)
	errExists := fmt.Errorf("job %s already exists", job.ID)

	err := r.rdb.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if n > 0 {
			return errExists
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			r.writeJob(ctx, pipe, key, job)
			return nil
		})
		return err
	}, key)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errExists), errors.Is(err, redis.TxFailedErr):
		return errExists
	default:
		return fmt.Errorf("redis create job: %w", err)
	}
}

// Update runs read-validate-write under WATCH so a concurrent writer cannot
// slip a transition in between.
func (r *RedisJobRepository) Update(ctx context.Context, id string, t entities.Transition) (*entities.Job, error) {
	key := jobKey(id)
	var updated *entities.Job

	txf := func(tx *redis.Tx) error {
		fields, err := tx.HGetAll(ctx, key).Result()
		if err != nil {
			return err
		}
		if len(fields) == 0 {
			return fmt.Errorf("job %s not found", id)
		}
		job, err := decodeJob(fields)
		if err != nil {
			return err
		}
		if err := job.Apply(t, r.now()); err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			r.writeJob(ctx, pipe, key, job)
			return nil
		})
		if err == nil {
			updated = job
		}
		return err
	}

	for attempt := 0; attempt < 3; attempt++ {
		err := r.rdb.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}
	return nil, fmt.Errorf("job %s: concurrent update", id)
}

func (r *RedisJobRepository) Lookup(ctx context.Context, id string) (*entities.Job, bool, error) {
	fields, err := r.rdb.HGetAll(ctx, jobKey(id)).Result()
	if err != nil {
		return nil, false, fmt.Errorf("redis lookup job: %w", err)
	}
	if len(fields) == 0 {
		return nil, false, nil
	}
	job, err := decodeJob(fields)
	if err != nil {
		return nil, false, err
	}
	return job, true, nil
}

// EvictTerminalBefore is a no-op; key TTLs handle retention.
func (r *RedisJobRepository) EvictTerminalBefore(context.Context, time.Time) (int, error) {
	return 0, nil
}

func (r *RedisJobRepository) writeJob(ctx context.Context, pipe redis.Pipeliner, key string, job *entities.Job) {
	pipe.HSet(ctx, key, encodeJob(job))
	if r.retention > 0 {
		pipe.Expire(ctx, key, r.retention)
	}
}

func encodeJob(job *entities.Job) map[string]any {
	return map[string]any{
		"id":               job.ID,
		"status":           string(job.Status),
		"message":          job.Message,
		"remote_reference": job.RemoteReference,
		"file_name":        job.FileName,
		"created_at":       job.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at":       job.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func decodeJob(fields map[string]string) (*entities.Job, error) {
	status := entities.JobStatus(fields["status"])
	if !status.Valid() {
		return nil, fmt.Errorf("job %s: invalid status %q", fields["id"], fields["status"])
	}
	createdAt, err := time.Parse(time.RFC3339Nano, fields["created_at"])
	if err != nil {
		return nil, fmt.Errorf("job %s: created_at: %w", fields["id"], err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, fields["updated_at"])
	if err != nil {
		return nil, fmt.Errorf("job %s: updated_at: %w", fields["id"], err)
	}
	return &entities.Job{
		ID:              fields["id"],
		Status:          status,
		Message:         fields["message"],
		RemoteReference: fields["remote_reference"],
		FileName:        fields["file_name"],
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}, nil
}
