package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction mirrors the CHECK constraint on transactions.direction.
type Direction string

const (
	Debit  Direction = "debit"
	Credit Direction = "credit"
)

// Transaction is a row of the transactions table.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`   // Primary Key (UUID)
	UploadID        string          `json:"uploadID"`        // FK -> uploads, ON DELETE CASCADE
	Position        int             `json:"position"`        // Order within the statement
	TransactionDate time.Time       `json:"transactionDate"` // date column
	Description     string          `json:"description"`     // Not Null
	Merchant        string          `json:"merchant"`        // Not Null, may be empty
	Branch          string          `json:"branch"`          // Not Null, may be empty
	Amount          decimal.Decimal `json:"amount"`          // numeric(15,2), >= 0
	Direction       Direction       `json:"direction"`       // debit or credit
	Balance         decimal.Decimal `json:"balance"`         // numeric(15,2)
	CategoryID      *int64          `json:"categoryID"`      // FK -> categories, ON DELETE SET NULL
	Notes           *string         `json:"notes"`           // Nullable
	Timestamps
}
