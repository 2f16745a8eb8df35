package repositories

import (
	"context"

	"github.com/SscSPs/fintrack/internal/core/domain"
)

// TransactionReader defines read operations for statement transactions.
type TransactionReader interface {
	// FindTransactionByID returns apperrors.ErrNotFound when the transaction does not exist.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionsByUploadID returns an upload's transactions in statement order.
	FindTransactionsByUploadID(ctx context.Context, uploadID string) ([]domain.Transaction, error)

	// ListCommittedTransactions lists transactions of committed uploads only, newest first,
	// using token-based pagination. It returns the page, a token for the next page, and an error.
	ListCommittedTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for statement transactions.
type TransactionWriter interface {
	// UpdateTransaction overwrites the editable fields of tx. With requirePending the
	// update only applies while the owning upload is pending; otherwise it returns
	// apperrors.ErrStateConflict.
	UpdateTransaction(ctx context.Context, tx domain.Transaction, requirePending bool) error

	// ApplyCategories sets category ids on transactions that have none yet and returns
	// how many rows changed. Manual choices are never overwritten.
	ApplyCategories(ctx context.Context, assignments map[string]int64) (int, error)
}

// TransactionRepositoryFacade combines transaction reads and writes.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
