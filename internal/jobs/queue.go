package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/fintrack/internal/middleware"
)

// Queue is an in-memory dispatcher backed by a buffered channel and a fixed worker pool.
// Suitable for a single instance; jobs are lost on restart.
type Queue struct {
	jobChan   chan *CategorizeJob
	closeChan chan struct{}
	wg        sync.WaitGroup
	mu        sync.RWMutex
	closed    bool
	workers   int
	backoff   time.Duration
	logger    *slog.Logger
}

// QueueOption configures a Queue.
type QueueOption func(*Queue)

// WithRetryBackoff sets the base delay between attempts; attempt n waits n*d.
func WithRetryBackoff(d time.Duration) QueueOption {
	return func(q *Queue) {
		q.backoff = d
	}
}

// NewQueue creates a queue. bufferSize is how many jobs may wait before Dispatch blocks.
func NewQueue(bufferSize, workers int, logger *slog.Logger, opts ...QueueOption) *Queue {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	q := &Queue{
		jobChan:   make(chan *CategorizeJob, bufferSize),
		closeChan: make(chan struct{}),
		workers:   workers,
		backoff:   time.Second,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Dispatch enqueues job, blocking while the buffer is full.
func (q *Queue) Dispatch(ctx context.Context, job *CategorizeJob) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrClosed
	}
	prepare(job)

	select {
	case q.jobChan <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-q.closeChan:
		return ErrClosed
	}
}

// Start launches the workers. ctx bounds the workers' lifetime, not a single job.
func (q *Queue) Start(ctx context.Context, handler Handler) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return ErrClosed
	}
	q.mu.RUnlock()

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(ctx, handler)
	}
	return nil
}

func (q *Queue) worker(ctx context.Context, handler Handler) {
	defer q.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-q.closeChan:
			return
		case job := <-q.jobChan:
			if job == nil {
				return
			}
			q.processJob(ctx, job, handler)
		}
	}
}

func (q *Queue) processJob(ctx context.Context, job *CategorizeJob, handler Handler) {
	logger := q.logger.With(slog.String("job_id", job.JobID), slog.String("upload_id", job.UploadID))
	job.Status = JobStatusRunning

	err := q.run(middleware.WithLogger(ctx, logger), job, handler)
	if err == nil {
		job.Status = JobStatusCompleted
		job.Error = ""
		return
	}

	job.Error = err.Error()
	if job.RetryCount >= job.MaxRetries {
		job.Status = JobStatusFailed
		logger.Error("Categorization job failed", slog.String("error", err.Error()), slog.Int("attempts", job.RetryCount+1))
		return
	}

	job.RetryCount++
	job.Status = JobStatusRetrying
	delay := time.Duration(job.RetryCount) * q.backoff
	logger.Warn("Categorization job will be retried", slog.String("error", err.Error()), slog.Duration("backoff", delay))
	time.AfterFunc(delay, func() {
		job.Status = JobStatusPending
		if err := q.Dispatch(ctx, job); err != nil {
			logger.Error("Failed to re-enqueue categorization job", slog.String("error", err.Error()))
		}
	})
}

func (q *Queue) run(ctx context.Context, job *CategorizeJob, handler Handler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return handler(ctx, job)
}

// Stop closes the queue and waits for in-flight jobs until ctx expires.
func (q *Queue) Stop(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.closeChan)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ Dispatcher = (*Queue)(nil)
