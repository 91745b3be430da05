package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

type localJob struct {
	kind string
	run  func(ctx context.Context, h Handlers) error
}

// Local is an in-process queue backed by a buffered channel and a pool of
// workers. Jobs are lost when the process exits.
type Local struct {
	jobs     chan localJob
	running  atomic.Int32
	workers  int
	maxRetry int

	mu     sync.RWMutex
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewLocal initializes a new job queue that limits the
// max amount of jobs that can be queued at once
func NewLocal(workers, maxJobs, maxRetry int) *Local {
	zap.L().Debug("Initializing job queue", zap.Int("max_jobs", maxJobs), zap.Int("workers", workers))

	ctx, cancel := context.WithCancel(context.Background())

	return &Local{
		jobs:     make(chan localJob, maxJobs),
		workers:  workers,
		maxRetry: maxRetry,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (q *Local) Start(h Handlers) error {
	for range q.workers {
		q.wg.Add(1)
		go q.worker(h)
	}

	return nil
}

func (q *Local) worker(h Handlers) {
	defer q.wg.Done()

	for job := range q.jobs {
		err := q.process(job, h)

		q.running.Add(-1)

		if err != nil {
			zap.L().Error("Job finished with an error",
				zap.String("type", job.kind),
				zap.Error(err))
		} else {
			zap.L().Debug("Job finished successfully", zap.String("type", job.kind))
		}
	}
}

func (q *Local) process(job localJob, h Handlers) (err error) {
	for attempt := 0; attempt <= q.maxRetry; attempt++ {
		err = job.run(q.ctx, h)
		if err == nil || errors.Is(err, ErrSkipRetry) || q.ctx.Err() != nil {
			return err
		}
	}

	return err
}

func (q *Local) enqueue(job localJob) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return errors.New("job queue closed")
	}

	select {
	case q.jobs <- job:
		q.running.Add(1)
		zap.L().Debug("New job enqueued", zap.Int32("enqueued", q.running.Load()), zap.String("type", job.kind))
		return nil
	default:
		return ErrFull
	}
}

func (q *Local) EnqueueThumbnail(_ context.Context, job ThumbnailJob) error {
	return q.enqueue(localJob{
		kind: TypeThumbnail,
		run: func(ctx context.Context, h Handlers) error {
			if h.Thumbnail == nil {
				return nil
			}
			return h.Thumbnail(ctx, job)
		},
	})
}

func (q *Local) EnqueueWelcome(_ context.Context, job WelcomeJob) error {
	return q.enqueue(localJob{
		kind: TypeWelcome,
		run: func(ctx context.Context, h Handlers) error {
			if h.Welcome == nil {
				return nil
			}
			return h.Welcome(ctx, job)
		},
	})
}

// Pending returns the number of jobs enqueued and not finished yet
func (q *Local) Pending() int {
	return int(q.running.Load())
}

// Shutdown stops accepting jobs and waits for the buffered ones to finish
func (q *Local) Shutdown() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()

	q.wg.Wait()
	q.cancel()
}
