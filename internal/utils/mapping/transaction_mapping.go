package mapping

import (
	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/SscSPs/fintrack/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		UploadID:        d.UploadID,
		Position:        d.Position,
		TransactionDate: d.Date,
		Description:     d.Description,
		Merchant:        d.Merchant,
		Branch:          d.Branch,
		Amount:          d.Amount,
		Direction:       models.Direction(d.Direction),
		Balance:         d.Balance,
		CategoryID:      d.CategoryID,
		Notes:           d.Notes,
		Timestamps:      ToModelTimestamps(d.Timestamps),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		UploadID:      m.UploadID,
		Position:      m.Position,
		Date:          m.TransactionDate,
		Description:   m.Description,
		Merchant:      m.Merchant,
		Branch:        m.Branch,
		Amount:        m.Amount,
		Direction:     domain.Direction(m.Direction),
		Balance:       m.Balance,
		CategoryID:    m.CategoryID,
		Notes:         m.Notes,
		Timestamps:    ToDomainTimestamps(m.Timestamps),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	if ms == nil {
		return []domain.Transaction{}
	}
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
