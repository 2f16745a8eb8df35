package dto

import (
	"time"

	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/SscSPs/fintrack/internal/statement"
	"github.com/shopspring/decimal"
)

// StatementFormat selects the parsing path.
type StatementFormat string

const (
	FormatCSV StatementFormat = "csv"
	FormatPDF StatementFormat = "pdf"
)

// IngestStatementRequest is one uploaded statement file.
type IngestStatementRequest struct {
	Filename string          `validate:"required,max=255"`
	Content  []byte          `validate:"required"`
	Year     int             `validate:"min=2000,max=2100"`
	Month    int             `validate:"omitempty,min=1,max=12"` // 0 derives the month from the statement
	Format   StatementFormat `validate:"omitempty,oneof=csv pdf"`
}

// UploadStatementForm holds the multipart fields that accompany the file.
type UploadStatementForm struct {
	Year  int `form:"year" binding:"required"`
	Month int `form:"month"`
}

// ListUploadsParams filters the upload listing.
type ListUploadsParams struct {
	Status string `form:"status" binding:"omitempty,oneof=pending committed"`
}

// UploadResponse defines the data returned for an upload.
type UploadResponse struct {
	UploadID         string              `json:"uploadID"`
	Filename         string              `json:"filename"`
	Month            int                 `json:"month"`
	Year             int                 `json:"year"`
	AccountNumber    string              `json:"accountNumber"`
	AccountName      string              `json:"accountName"`
	Currency         string              `json:"currency"`
	OpeningBalance   decimal.Decimal     `json:"openingBalance"`
	ClosingBalance   decimal.Decimal     `json:"closingBalance"`
	TotalCredit      decimal.Decimal     `json:"totalCredit"`
	TotalDebit       decimal.Decimal     `json:"totalDebit"`
	TransactionCount int                 `json:"transactionCount"`
	Status           domain.UploadStatus `json:"status"`
	Archived         bool                `json:"archived"`
	UploadedAt       time.Time           `json:"uploadedAt"`
}

// UploadDetailResponse is an upload with its transactions and reconciliation report.
type UploadDetailResponse struct {
	Upload         UploadResponse           `json:"upload"`
	Transactions   []TransactionResponse    `json:"transactions"`
	Reconciliation statement.Reconciliation `json:"reconciliation"`
}

// ToUploadResponse converts a domain.Upload to UploadResponse DTO
func ToUploadResponse(u *domain.Upload) UploadResponse {
	return UploadResponse{
		UploadID:         u.UploadID,
		Filename:         u.Filename,
		Month:            u.Month,
		Year:             u.Year,
		AccountNumber:    u.AccountNumber,
		AccountName:      u.AccountName,
		Currency:         u.Currency,
		OpeningBalance:   u.OpeningBalance,
		ClosingBalance:   u.ClosingBalance,
		TotalCredit:      u.TotalCredit,
		TotalDebit:       u.TotalDebit,
		TransactionCount: u.TransactionCount,
		Status:           u.Status,
		Archived:         u.ArchiveURI != "",
		UploadedAt:       u.UploadedAt,
	}
}

// ToListUploadResponse converts a slice of domain.Upload to UploadResponse DTOs
func ToListUploadResponse(uploads []domain.Upload) []UploadResponse {
	res := make([]UploadResponse, len(uploads))
	for i := range uploads {
		res[i] = ToUploadResponse(&uploads[i])
	}
	return res
}
