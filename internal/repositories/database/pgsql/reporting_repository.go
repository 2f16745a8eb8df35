package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/fintrack/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface.
// Every query joins uploads on status = 'committed'.
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetPeriodTotals sums a month of committed transactions.
func (r *reportingRepository) GetPeriodTotals(ctx context.Context, period domain.Period) (domain.PeriodTotals, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN t.direction = 'credit' THEN t.amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN t.direction = 'debit' THEN t.amount ELSE 0 END), 0) AS debits,
			COALESCE(SUM(CASE WHEN t.direction = 'debit' AND c.name = ANY($3) THEN t.amount ELSE 0 END), 0) AS allocations,
			COUNT(t.transaction_id) AS transaction_count
		FROM transactions t
		JOIN uploads u ON u.upload_id = t.upload_id
		LEFT JOIN categories c ON c.category_id = t.category_id
		WHERE u.status = 'committed' AND u.month = $1 AND u.year = $2
	`
	var totals domain.PeriodTotals
	err := r.Pool.QueryRow(ctx, query, period.Month, period.Year, domain.AllocationCategories).Scan(
		&totals.Income,
		&totals.Debits,
		&totals.Allocations,
		&totals.TransactionCount,
	)
	if err != nil {
		return domain.PeriodTotals{}, fmt.Errorf("error querying period totals: %w", err)
	}

	closingQuery := `
		SELECT closing_balance FROM uploads
		WHERE status = 'committed' AND month = $1 AND year = $2
		ORDER BY uploaded_at DESC
		LIMIT 1
	`
	rows, err := r.Pool.Query(ctx, closingQuery, period.Month, period.Year)
	if err != nil {
		return domain.PeriodTotals{}, fmt.Errorf("error querying closing balance: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		var closing decimal.Decimal
		if err := rows.Scan(&closing); err != nil {
			return domain.PeriodTotals{}, fmt.Errorf("error scanning closing balance: %w", err)
		}
		totals.ClosingBalance = &closing
	}
	if err := rows.Err(); err != nil {
		return domain.PeriodTotals{}, fmt.Errorf("error iterating closing balance rows: %w", err)
	}
	return totals, nil
}

// GetCategoryBreakdown groups a month of committed transactions of one direction by category.
// Percentages are filled in by the service.
func (r *reportingRepository) GetCategoryBreakdown(ctx context.Context, period domain.Period, direction domain.Direction) ([]domain.CategoryAmount, error) {
	query := `
		SELECT t.category_id, c.name, c.color, SUM(t.amount) AS total, COUNT(*) AS count
		FROM transactions t
		JOIN uploads u ON u.upload_id = t.upload_id
		LEFT JOIN categories c ON c.category_id = t.category_id
		WHERE u.status = 'committed' AND u.month = $1 AND u.year = $2 AND t.direction = $3
		GROUP BY t.category_id, c.name, c.color
		ORDER BY total DESC
	`
	rows, err := r.Pool.Query(ctx, query, period.Month, period.Year, string(direction))
	if err != nil {
		return nil, fmt.Errorf("error querying category breakdown: %w", err)
	}
	defer rows.Close()

	result := []domain.CategoryAmount{}
	for rows.Next() {
		var row domain.CategoryAmount
		var name, color *string
		if err := rows.Scan(&row.CategoryID, &name, &color, &row.Total, &row.Count); err != nil {
			return nil, fmt.Errorf("error scanning category breakdown row: %w", err)
		}
		if name != nil {
			row.Name = *name
		}
		if color != nil {
			row.Color = *color
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category breakdown rows: %w", err)
	}
	return result, nil
}

// GetTopMerchants ranks a month's committed debits by merchant.
func (r *reportingRepository) GetTopMerchants(ctx context.Context, period domain.Period, limit int) ([]domain.MerchantAmount, error) {
	query := `
		SELECT COALESCE(NULLIF(t.merchant, ''), t.description) AS merchant, SUM(t.amount) AS total, COUNT(*) AS count
		FROM transactions t
		JOIN uploads u ON u.upload_id = t.upload_id
		WHERE u.status = 'committed' AND u.month = $1 AND u.year = $2 AND t.direction = 'debit'
		GROUP BY 1
		ORDER BY total DESC, merchant
		LIMIT $3
	`
	rows, err := r.Pool.Query(ctx, query, period.Month, period.Year, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying top merchants: %w", err)
	}
	defer rows.Close()

	result := []domain.MerchantAmount{}
	for rows.Next() {
		var row domain.MerchantAmount
		if err := rows.Scan(&row.Merchant, &row.Total, &row.Count); err != nil {
			return nil, fmt.Errorf("error scanning top merchant row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top merchant rows: %w", err)
	}
	return result, nil
}
