package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func TestWorkerPoolRunsJobs(t *testing.T) {
	pool := NewWorkerPool(3, 10, zaptest.NewLogger(t), nil)

	var mu sync.Mutex
	seen := map[string]bool{}
	pool.Start(func(_ context.Context, job Job) error {
		mu.Lock()
		seen[job.ID] = true
		mu.Unlock()
		return nil
	})

	for _, id := range []string{"a", "b", "c", "d"} {
		if err := pool.Submit(Job{ID: id, Type: JobVideoPublish}); err != nil {
			t.Fatalf("Submit(%s): %v", id, err)
		}
	}
	if err := pool.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	if len(seen) != 4 {
		t.Fatalf("ran %d jobs, want 4", len(seen))
	}
}

func TestWorkerPoolRecoversPanics(t *testing.T) {
	pool := NewWorkerPool(1, 10, zaptest.NewLogger(t), nil)
	var ran atomic.Int32
	pool.Start(func(_ context.Context, job Job) error {
		ran.Add(1)
		if job.ID == "bad" {
			panic("boom")
		}
		return nil
	})

	_ = pool.Submit(Job{ID: "bad"})
	_ = pool.Submit(Job{ID: "good"})
	if err := pool.Shutdown(context.Background()); err != nil {
		t.Fatal(err)
	}
	if ran.Load() != 2 {
		t.Fatalf("ran %d jobs; worker died after panic", ran.Load())
	}
}

func TestWorkerPoolQueueFull(t *testing.T) {
	pool := NewWorkerPool(1, 1, zaptest.NewLogger(t), nil)
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	pool.Start(func(ctx context.Context, job Job) error {
		started <- struct{}{}
		<-release
		return nil
	})

	if err := pool.Submit(Job{ID: "1"}); err != nil {
		t.Fatal(err)
	}
	<-started // worker is busy with job 1
	if err := pool.Submit(Job{ID: "2"}); err != nil {
		t.Fatal(err)
	}
	if err := pool.Submit(Job{ID: "3"}); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("err = %v, want ErrQueueFull", err)
	}

	close(release)
	if err := pool.Shutdown(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := pool.Submit(Job{ID: "4"}); !errors.Is(err, ErrPoolClosed) {
		t.Fatalf("err = %v, want ErrPoolClosed", err)
	}
}

func TestWorkerPoolShutdownCancelsOnDeadline(t *testing.T) {
	pool := NewWorkerPool(1, 1, zaptest.NewLogger(t), nil)
	started := make(chan struct{})
	var cancelled atomic.Bool
	pool.Start(func(ctx context.Context, job Job) error {
		close(started)
		<-ctx.Done()
		cancelled.Store(true)
		return ctx.Err()
	})
	_ = pool.Submit(Job{ID: "long"})
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := pool.Shutdown(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v", err)
	}
	if !cancelled.Load() {
		t.Fatal("running job was not cancelled")
	}
}
