package repositories

import (
	"context"

	"github.com/SscSPs/fintrack/internal/core/domain"
)

// ReportingRepository aggregates committed transactions. Pending uploads never contribute.
type ReportingRepository interface {
	// GetPeriodTotals sums income, debits and allocations for a month.
	GetPeriodTotals(ctx context.Context, period domain.Period) (domain.PeriodTotals, error)

	// GetCategoryBreakdown groups a month's transactions of one direction by category, largest first.
	GetCategoryBreakdown(ctx context.Context, period domain.Period, direction domain.Direction) ([]domain.CategoryAmount, error)

	// GetTopMerchants ranks merchants by total debit for a month.
	GetTopMerchants(ctx context.Context, period domain.Period, limit int) ([]domain.MerchantAmount, error)
}
