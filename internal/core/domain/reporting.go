package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period identifies a calendar month of committed activity.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Previous returns the month before p.
func (p Period) Previous() Period {
	if p.Month == 1 {
		return Period{Month: 12, Year: p.Year - 1}
	}
	return Period{Month: p.Month - 1, Year: p.Year}
}

// PeriodTotals are raw committed-only sums for one month.
type PeriodTotals struct {
	Income           decimal.Decimal
	Debits           decimal.Decimal
	Allocations      decimal.Decimal
	TransactionCount int
	ClosingBalance   *decimal.Decimal // nil when no committed upload covers the period
}

// Summary is the monthly overview shown on the dashboard.
type Summary struct {
	Period           Period           `json:"period"`
	Income           decimal.Decimal  `json:"income"`
	Expenses         decimal.Decimal  `json:"expenses"`
	Allocations      decimal.Decimal  `json:"allocations"`
	Net              decimal.Decimal  `json:"net"`
	ClosingBalance   *decimal.Decimal `json:"closingBalance"`
	TransactionCount int              `json:"transactionCount"`
	IncomeChange     *decimal.Decimal `json:"incomeChange"`   // percent vs previous month
	ExpensesChange   *decimal.Decimal `json:"expensesChange"` // percent vs previous month
}

// CategoryAmount is one row of a category breakdown.
type CategoryAmount struct {
	CategoryID *int64          `json:"categoryID"`
	Name       string          `json:"name"`
	Color      string          `json:"color"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
}

// MerchantAmount is one row of the top merchants report.
type MerchantAmount struct {
	Merchant string          `json:"merchant"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// TransactionFilter narrows a listing of committed transactions.
type TransactionFilter struct {
	Month      int
	Year       int
	CategoryID *int64
	Direction  Direction
	Search     string
	Limit      int
	NextToken  *string
}

// TransactionCursor is the keyset position used for pagination.
type TransactionCursor struct {
	Date          time.Time
	CreatedAt     time.Time
	TransactionID string
}
