package services

import (
	"context"

	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/SscSPs/fintrack/internal/dto"
	"github.com/SscSPs/fintrack/internal/jobs"
	"github.com/SscSPs/fintrack/internal/statement"
)

// UploadDetail is an upload with its transactions in statement order and the
// reconciliation of its footer against them.
type UploadDetail struct {
	Upload         domain.Upload
	Transactions   []domain.Transaction
	Reconciliation statement.Reconciliation
}

// IngestionReaderSvc defines read operations over uploads.
type IngestionReaderSvc interface {
	// GetUpload returns an upload with its transactions. Reconciliation is recomputed
	// from the stored rows, so it reflects review edits.
	GetUpload(ctx context.Context, uploadID string) (*UploadDetail, error)

	// ListUploads returns uploads newest first, optionally filtered by status.
	ListUploads(ctx context.Context, status *domain.UploadStatus) ([]domain.Upload, error)
}

// IngestionWriterSvc drives the pending -> committed / pending -> deleted lifecycle.
type IngestionWriterSvc interface {
	// Ingest parses a statement and stores it as a pending upload. A statement that
	// yields no transactions returns apperrors.ErrNoTransactions and persists nothing.
	Ingest(ctx context.Context, req dto.IngestStatementRequest) (*UploadDetail, error)

	// Commit makes a pending upload count toward reporting. It is irreversible.
	Commit(ctx context.Context, uploadID string) (*domain.Upload, error)

	// Discard deletes a pending upload and its transactions.
	Discard(ctx context.Context, uploadID string) error

	// ReviewEdit applies a partial edit to one transaction. Ledger fields are frozen
	// once the upload is committed; category and notes stay editable.
	ReviewEdit(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
}

// CategorizationSvc merges oracle suggestions into stored transactions.
type CategorizationSvc interface {
	// ProcessCategorization is the handler run by the job dispatcher.
	ProcessCategorization(ctx context.Context, job *jobs.CategorizeJob) error
}

// IngestionSvcFacade combines all ingestion operations.
type IngestionSvcFacade interface {
	IngestionReaderSvc
	IngestionWriterSvc
	CategorizationSvc
}
