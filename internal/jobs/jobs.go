package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/fintrack/internal/categorizer"
)

// JobStatus tracks a job through the queue.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusRetrying  JobStatus = "retrying"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// DefaultMaxRetries applies when a job does not set MaxRetries.
const DefaultMaxRetries = 3

// ErrClosed is returned when publishing to or starting a stopped dispatcher.
var ErrClosed = errors.New("dispatcher is closed")

// CategorizeJob asks for category suggestions for the transactions of one upload.
// TransactionIDs[i] is the row that Items[i] describes.
type CategorizeJob struct {
	JobID          string             `json:"jobId"`
	UploadID       string             `json:"uploadId"`
	TransactionIDs []string           `json:"transactionIds"`
	Items          []categorizer.Item `json:"items"`
	Status         JobStatus          `json:"status"`
	CreatedAt      time.Time          `json:"createdAt"`
	RetryCount     int                `json:"retryCount"`
	MaxRetries     int                `json:"maxRetries"`
	Error          string             `json:"error,omitempty"`
}

// Handler processes one job. A returned error makes the job eligible for retry.
type Handler func(ctx context.Context, job *CategorizeJob) error

// Dispatcher accepts jobs and hands them to the handler registered with Start.
type Dispatcher interface {
	Dispatch(ctx context.Context, job *CategorizeJob) error
	Start(ctx context.Context, handler Handler) error
	Stop(ctx context.Context) error
}
