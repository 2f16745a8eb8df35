package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/fintrack/internal/apperrors"
	"github.com/SscSPs/fintrack/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fintrack/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// Reporting limits.
const (
	DefaultTopMerchants = 10
	MaxTopMerchants     = 50
	DefaultPageSize     = 50
	MaxPageSize         = 200
)

var hundred = decimal.NewFromInt(100)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo   portsrepo.ReportingRepository
	transactionRepo portsrepo.TransactionReader
}

// NewReportingService creates a new reporting service
func NewReportingService(repo portsrepo.ReportingRepository, transactionRepo portsrepo.TransactionReader) portssvc.ReportingService {
	return &reportingService{
		reportingRepo:   repo,
		transactionRepo: transactionRepo,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// Summary computes the monthly overview. Allocations are debits to allocation
// categories and are excluded from expenses.
func (s *reportingService) Summary(ctx context.Context, period domain.Period) (*domain.Summary, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	current, err := s.reportingRepo.GetPeriodTotals(ctx, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve period totals",
			slog.Int("month", period.Month), slog.Int("year", period.Year))
		return nil, fmt.Errorf("failed to retrieve period totals: %w", err)
	}
	previous, err := s.reportingRepo.GetPeriodTotals(ctx, period.Previous())
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve previous period totals",
			slog.Int("month", period.Month), slog.Int("year", period.Year))
		return nil, fmt.Errorf("failed to retrieve previous period totals: %w", err)
	}

	expenses := current.Debits.Sub(current.Allocations)
	prevExpenses := previous.Debits.Sub(previous.Allocations)

	summary := &domain.Summary{
		Period:           period,
		Income:           current.Income,
		Expenses:         expenses,
		Allocations:      current.Allocations,
		Net:              current.Income.Sub(expenses).Sub(current.Allocations),
		ClosingBalance:   current.ClosingBalance,
		TransactionCount: current.TransactionCount,
		IncomeChange:     percentChange(current.Income, previous.Income),
		ExpensesChange:   percentChange(expenses, prevExpenses),
	}

	s.LogDebug(ctx, "Summary generated",
		slog.Int("month", period.Month), slog.Int("year", period.Year),
		slog.Int("transaction_count", summary.TransactionCount))
	return summary, nil
}

// CategoryBreakdown groups one direction of a month by category with each share of the total.
func (s *reportingService) CategoryBreakdown(ctx context.Context, period domain.Period, direction domain.Direction) ([]domain.CategoryAmount, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	if !direction.IsValid() {
		return nil, apperrors.NewValidationError("type must be debit or credit")
	}

	rows, err := s.reportingRepo.GetCategoryBreakdown(ctx, period, direction)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve category breakdown",
			slog.Int("month", period.Month), slog.Int("year", period.Year))
		return nil, fmt.Errorf("failed to retrieve category breakdown: %w", err)
	}

	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Total)
	}
	for i := range rows {
		if rows[i].CategoryID == nil || rows[i].Name == "" {
			rows[i].Name = domain.CategoryUncategorized
		}
		if total.IsPositive() {
			rows[i].Percentage = rows[i].Total.Mul(hundred).Div(total).Round(1)
		} else {
			rows[i].Percentage = decimal.Zero
		}
	}
	return rows, nil
}

// TopMerchants ranks a month's debits by merchant.
func (s *reportingService) TopMerchants(ctx context.Context, period domain.Period, limit int) ([]domain.MerchantAmount, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultTopMerchants
	}
	if limit > MaxTopMerchants {
		limit = MaxTopMerchants
	}

	merchants, err := s.reportingRepo.GetTopMerchants(ctx, period, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve top merchants",
			slog.Int("month", period.Month), slog.Int("year", period.Year))
		return nil, fmt.Errorf("failed to retrieve top merchants: %w", err)
	}
	return merchants, nil
}

// ListTransactions lists committed transactions newest first.
func (s *reportingService) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, *string, error) {
	if filter.Direction != "" && !filter.Direction.IsValid() {
		return nil, nil, apperrors.NewValidationError("type must be debit or credit")
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultPageSize
	}
	if filter.Limit > MaxPageSize {
		filter.Limit = MaxPageSize
	}

	txs, next, err := s.transactionRepo.ListCommittedTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list committed transactions")
		return nil, nil, err
	}
	return txs, next, nil
}

func validatePeriod(p domain.Period) error {
	if p.Month < 1 || p.Month > 12 {
		return apperrors.NewValidationError("month must be between 1 and 12")
	}
	if p.Year < 2000 || p.Year > 2100 {
		return apperrors.NewValidationError("year must be between 2000 and 2100")
	}
	return nil
}

// percentChange is nil when there is no previous value to compare against.
func percentChange(current, previous decimal.Decimal) *decimal.Decimal {
	if previous.IsZero() {
		return nil
	}
	change := current.Sub(previous).Mul(hundred).Div(previous.Abs()).Round(1)
	return &change
}
