package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UploadStatus mirrors the CHECK constraint on uploads.status.
type UploadStatus string

const (
	UploadPending   UploadStatus = "pending"
	UploadCommitted UploadStatus = "committed"
)

// Upload is a row of the uploads table.
type Upload struct {
	UploadID         string          `json:"uploadID"`         // Primary Key (UUID)
	Filename         string          `json:"filename"`         // Not Null
	Month            int             `json:"month"`            // 1..12
	Year             int             `json:"year"`             // 2000..2100
	AccountNumber    string          `json:"accountNumber"`    // May be empty for PDF uploads
	AccountName      string          `json:"accountName"`      // May be empty for PDF uploads
	Currency         string          `json:"currency"`         // Defaults to IDR
	OpeningBalance   decimal.Decimal `json:"openingBalance"`   // numeric(15,2)
	ClosingBalance   decimal.Decimal `json:"closingBalance"`   // numeric(15,2)
	TotalCredit      decimal.Decimal `json:"totalCredit"`      // numeric(15,2)
	TotalDebit       decimal.Decimal `json:"totalDebit"`       // numeric(15,2)
	TransactionCount int             `json:"transactionCount"` // Rows inserted with the upload
	Status           UploadStatus    `json:"status"`           // pending or committed
	ArchiveURI       *string         `json:"archiveURI"`       // Nullable gs:// URI
	UploadedAt       time.Time       `json:"uploadedAt"`
}
