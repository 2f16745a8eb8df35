package jobs

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Inline runs each job synchronously inside Dispatch. It never retries.
type Inline struct {
	mu      sync.RWMutex
	handler Handler
	closed  bool
}

// NewInline creates an inline dispatcher. Jobs dispatched before Start are dropped.
func NewInline() *Inline {
	return &Inline{}
}

// Dispatch runs the handler on the caller's goroutine and returns its error.
func (d *Inline) Dispatch(ctx context.Context, job *CategorizeJob) error {
	d.mu.RLock()
	handler, closed := d.handler, d.closed
	d.mu.RUnlock()

	if closed {
		return ErrClosed
	}
	if handler == nil {
		return errors.New("inline dispatcher has no handler")
	}
	prepare(job)
	job.Status = JobStatusRunning
	if err := handler(ctx, job); err != nil {
		job.Status = JobStatusFailed
		job.Error = err.Error()
		return err
	}
	job.Status = JobStatusCompleted
	return nil
}

// Start registers the handler.
func (d *Inline) Start(_ context.Context, handler Handler) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	d.handler = handler
	return nil
}

// Stop rejects further jobs.
func (d *Inline) Stop(context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	return nil
}

func prepare(job *CategorizeJob) {
	if job.JobID == "" {
		job.JobID = uuid.NewString()
	}
	if job.Status == "" {
		job.Status = JobStatusPending
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}
	if job.MaxRetries == 0 {
		job.MaxRetries = DefaultMaxRetries
	}
}

var _ Dispatcher = (*Inline)(nil)
