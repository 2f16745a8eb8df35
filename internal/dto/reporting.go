package dto

import "github.com/SscSPs/fintrack/internal/core/domain"

// StatsParams selects the reporting month.
type StatsParams struct {
	Month int `form:"month" binding:"required,min=1,max=12"`
	Year  int `form:"year" binding:"required,min=2000,max=2100"`
}

// Period converts the params to a domain.Period.
func (p StatsParams) Period() domain.Period {
	return domain.Period{Month: p.Month, Year: p.Year}
}

// CategoryBreakdownParams adds the direction to break down.
type CategoryBreakdownParams struct {
	StatsParams
	Direction string `form:"type,default=debit" binding:"oneof=debit credit"`
}

// TopMerchantsParams adds the number of merchants to return.
type TopMerchantsParams struct {
	StatsParams
	Limit int `form:"limit,default=10" binding:"min=1,max=50"`
}

// CategoryBreakdownResponse is the per-category report for a month.
type CategoryBreakdownResponse struct {
	Period     domain.Period           `json:"period"`
	Direction  domain.Direction        `json:"direction"`
	Categories []domain.CategoryAmount `json:"categories"`
}

// TopMerchantsResponse is the merchant ranking for a month.
type TopMerchantsResponse struct {
	Period    domain.Period           `json:"period"`
	Merchants []domain.MerchantAmount `json:"merchants"`
}
