package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction indicates whether money left (debit) or entered (credit) the account.
type Direction string

const (
	Debit  Direction = "debit"
	Credit Direction = "credit"
)

// DebitMarker is the two-letter literal a statement uses to flag an outflow.
const DebitMarker = "DB"

// DirectionFromMarker maps a statement direction literal to a Direction.
// Only DebitMarker means debit; every other value is a credit.
func DirectionFromMarker(marker string) Direction {
	if marker == DebitMarker {
		return Debit
	}
	return Credit
}

// IsValid reports whether d is one of the two known directions.
func (d Direction) IsValid() bool {
	return d == Debit || d == Credit
}

// Transaction is the persisted form of a parsed statement line.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	UploadID      string          `json:"uploadID"`      // FK -> Upload.uploadID, cascades on delete
	Position      int             `json:"position"`      // Index within the ingestion batch
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Merchant      string          `json:"merchant"`
	Branch        string          `json:"branch"`
	Amount        decimal.Decimal `json:"amount"` // Always >= 0; sign lives in Direction
	Direction     Direction       `json:"direction"`
	Balance       decimal.Decimal `json:"balance"`    // Running balance after this line
	CategoryID    *int64          `json:"categoryID"` // Weak reference, nulled when the category is deleted
	Notes         *string         `json:"notes"`
	Timestamps
}

// SignedAmount returns the amount as an account delta: negative for debits.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Direction == Debit {
		return t.Amount.Neg()
	}
	return t.Amount
}
