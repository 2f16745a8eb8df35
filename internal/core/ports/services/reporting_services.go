package services

import (
	"context"

	"github.com/SscSPs/fintrack/internal/core/domain"
)

// ReportingService defines read-only reports over committed transactions.
type ReportingService interface {
	// Summary computes income, expenses, allocations and net for a month, with the
	// change against the previous month.
	Summary(ctx context.Context, period domain.Period) (*domain.Summary, error)

	// CategoryBreakdown groups a month's transactions of one direction by category.
	CategoryBreakdown(ctx context.Context, period domain.Period, direction domain.Direction) ([]domain.CategoryAmount, error)

	// TopMerchants ranks merchants by debit total for a month.
	TopMerchants(ctx context.Context, period domain.Period, limit int) ([]domain.MerchantAmount, error)

	// ListTransactions lists committed transactions using token-based pagination.
	ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, *string, error)
}
