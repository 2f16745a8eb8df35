package repositories

import (
	"context"

	"github.com/SscSPs/fintrack/internal/core/domain"
)

// UploadReader defines read operations for statement uploads.
type UploadReader interface {
	// FindUploadByID returns apperrors.ErrNotFound when the upload does not exist.
	FindUploadByID(ctx context.Context, uploadID string) (*domain.Upload, error)

	// ListUploads returns uploads newest first, optionally filtered by status.
	ListUploads(ctx context.Context, status *domain.UploadStatus) ([]domain.Upload, error)
}

// UploadWriter defines write operations for statement uploads.
type UploadWriter interface {
	// CreateUploadWithTransactions persists a pending upload and all its transactions atomically.
	CreateUploadWithTransactions(ctx context.Context, upload domain.Upload, transactions []domain.Transaction) error

	// MarkUploadCommitted flips a pending upload to committed. It returns
	// apperrors.ErrNotFound for an unknown id and apperrors.ErrStateConflict when
	// the upload is not pending. The check and the update are one statement.
	MarkUploadCommitted(ctx context.Context, uploadID string) (*domain.Upload, error)

	// DeletePendingUpload removes a pending upload and, by cascade, its transactions.
	// Same error contract as MarkUploadCommitted.
	DeletePendingUpload(ctx context.Context, uploadID string) error
}

// UploadRepositoryFacade combines upload reads and writes.
type UploadRepositoryFacade interface {
	UploadReader
	UploadWriter
}
