package dto

import (
	"time"

	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of transaction dates.
const DateLayout = "2006-01-02"

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string           `json:"transactionID"`
	UploadID      string           `json:"uploadID"`
	Position      int              `json:"position"`
	Date          string           `json:"date"`
	Description   string           `json:"description"`
	Merchant      string           `json:"merchant"`
	Branch        string           `json:"branch"`
	Amount        decimal.Decimal  `json:"amount"`
	Direction     domain.Direction `json:"direction"`
	Balance       decimal.Decimal  `json:"balance"`
	CategoryID    *int64           `json:"categoryID"`
	Notes         *string          `json:"notes"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// UpdateTransactionRequest is a partial review edit. Pointer fields are optional;
// CategoryID and Notes may also be cleared with an explicit null.
// Validated by the service, not by gin binding.
type UpdateTransactionRequest struct {
	Date        *string           `json:"date" validate:"omitnil,datetime=2006-01-02"`
	Description *string           `json:"description" validate:"omitnil,min=1,max=500"`
	Merchant    *string           `json:"merchant" validate:"omitnil,max=200"`
	Amount      *decimal.Decimal  `json:"amount" validate:"omitnil,gt=0"`
	Direction   *domain.Direction `json:"direction" validate:"omitnil,oneof=debit credit"`
	CategoryID  Nullable[int64]   `json:"categoryId" validate:"omitempty,gt=0"`
	Notes       Nullable[string]  `json:"notes" validate:"omitempty,max=1000"`
}

// EditsLedger reports whether the patch touches fields that are frozen after commit.
func (r UpdateTransactionRequest) EditsLedger() bool {
	return r.Date != nil || r.Description != nil || r.Merchant != nil || r.Amount != nil || r.Direction != nil
}

// IsEmpty reports whether the patch changes nothing.
func (r UpdateTransactionRequest) IsEmpty() bool {
	return !r.EditsLedger() && !r.CategoryID.Set && !r.Notes.Set
}

// ListTransactionsParams defines query parameters for listing committed transactions.
type ListTransactionsParams struct {
	Month      int     `form:"month" binding:"omitempty,min=1,max=12"`
	Year       int     `form:"year" binding:"omitempty,min=2000,max=2100"`
	CategoryID *int64  `form:"categoryId"`
	Direction  string  `form:"type" binding:"omitempty,oneof=debit credit"`
	Search     string  `form:"search" binding:"max=100"`
	Limit      int     `form:"limit,default=50" binding:"min=1,max=200"`
	NextToken  *string `form:"nextToken"`
}

// ListTransactionsResponse is one page of committed transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		UploadID:      t.UploadID,
		Position:      t.Position,
		Date:          t.Date.Format(DateLayout),
		Description:   t.Description,
		Merchant:      t.Merchant,
		Branch:        t.Branch,
		Amount:        t.Amount,
		Direction:     t.Direction,
		Balance:       t.Balance,
		CategoryID:    t.CategoryID,
		Notes:         t.Notes,
		UpdatedAt:     t.UpdatedAt,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction to TransactionResponse DTOs
func ToListTransactionResponse(txs []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txs))
	for i := range txs {
		res[i] = ToTransactionResponse(&txs[i])
	}
	return res
}
