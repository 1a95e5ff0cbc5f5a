package queue

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"
)

// Handler processes one job. It is the job's only writer.
type Handler func(ctx context.Context, job Job) error

type Worker struct {
	ID      int        // worker id
	JobChan <-chan Job // iş kuyruğu
	Wg      *sync.WaitGroup
	Handler Handler
	Log     *zap.Logger
	OnTake  func()
}

func (w *Worker) Start(ctx context.Context) { // worker başlatma fonksiyonu
	go func() {
		defer w.Wg.Done()
		for job := range w.JobChan { // channel kapanınca çıkar
			if w.OnTake != nil {
				w.OnTake()
			}
			w.process(ctx, job)
		}
		w.Log.Debug("job channel closed", zap.Int("worker", w.ID))
	}()
}

// process runs the handler, turning a panic into an error so one bad job
// cannot take the worker down.
func (w *Worker) process(ctx context.Context, job Job) {
	log := w.Log.With(zap.Int("worker", w.ID), zap.String("job_id", job.ID), zap.String("type", string(job.Type)))

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
				log.Error("job panicked", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
			}
		}()
		return w.Handler(ctx, job)
	}()

	if err != nil {
		log.Warn("job finished with error", zap.Error(err))
		return
	}
	log.Debug("job finished")
}
