package queue

import (
	"context"
	"errors"
	"sync"

	"media-publisher/internal/infrastructure/metrics"

	"go.uber.org/zap"
)

var (
	ErrQueueFull  = errors.New("job queue is full")
	ErrPoolClosed = errors.New("worker pool is shut down")
)

type WorkerPool struct {
	JobChan chan Job
	wg      sync.WaitGroup
	ctx     context.Context    // graceful shutdown için
	cancel  context.CancelFunc // graceful shutdown için

	mu      sync.RWMutex
	closed  bool
	started bool
	workers int
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewWorkerPool(workerCount, queueSize int, log *zap.Logger, m *metrics.Metrics) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerPool{
		JobChan: make(chan Job, queueSize),
		ctx:     ctx,
		cancel:  cancel,
		workers: workerCount,
		log:     log.With(zap.String("component", "worker_pool")),
		metrics: m,
	}
}

// Start launches the workers. Jobs run on the pool's context, not on the
// context of the request that submitted them.
func (p *WorkerPool) Start(handler Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.closed {
		return
	}
	p.started = true

	for i := 0; i < p.workers; i++ {
		worker := &Worker{
			ID:      i,
			JobChan: p.JobChan,
			Wg:      &p.wg,
			Handler: handler,
			Log:     p.log,
			OnTake:  func() { p.metrics.SetQueueDepth(len(p.JobChan)) },
		}
		p.wg.Add(1)
		worker.Start(p.ctx)
	}
	p.log.Info("worker pool started", zap.Int("workers", p.workers), zap.Int("queue_size", cap(p.JobChan)))
}

// Submit enqueues job without blocking.
func (p *WorkerPool) Submit(job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.JobChan <- job:
		p.metrics.SetQueueDepth(len(p.JobChan))
		return nil
	default:
		return ErrQueueFull
	}
}

// Shutdown stops accepting jobs and waits for queued ones to drain. When ctx
// expires first, running jobs are cancelled and Shutdown waits for them to
// notice.
func (p *WorkerPool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.JobChan)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.log.Warn("shutdown deadline reached, cancelling running jobs")
		p.cancel()
		<-done
		return ctx.Err()
	}
}
