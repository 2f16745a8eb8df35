package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UploadStatus is the lifecycle state of an ingested statement batch.
type UploadStatus string

const (
	UploadPending   UploadStatus = "pending"
	UploadCommitted UploadStatus = "committed"
)

// Upload is one ingested statement: the unit of commit and discard.
type Upload struct {
	UploadID         string          `json:"uploadID"`
	Filename         string          `json:"filename"`
	Month            int             `json:"month"`
	Year             int             `json:"year"`
	AccountNumber    string          `json:"accountNumber"`
	AccountName      string          `json:"accountName"`
	Currency         string          `json:"currency"`
	OpeningBalance   decimal.Decimal `json:"openingBalance"`
	ClosingBalance   decimal.Decimal `json:"closingBalance"`
	TotalCredit      decimal.Decimal `json:"totalCredit"`
	TotalDebit       decimal.Decimal `json:"totalDebit"`
	TransactionCount int             `json:"transactionCount"`
	Status           UploadStatus    `json:"status"`
	ArchiveURI       string          `json:"archiveURI,omitempty"`
	UploadedAt       time.Time       `json:"uploadedAt"`
}

// IsPending reports whether the upload can still be reviewed, committed or discarded.
func (u Upload) IsPending() bool {
	return u.Status == UploadPending
}

// IsCommitted reports whether the upload's transactions count toward reporting.
func (u Upload) IsCommitted() bool {
	return u.Status == UploadCommitted
}
