package mapping

import (
	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/SscSPs/fintrack/internal/models"
)

// ToModelUpload converts a domain Upload to a model Upload
func ToModelUpload(d domain.Upload) models.Upload {
	var archiveURI *string
	if d.ArchiveURI != "" {
		uri := d.ArchiveURI
		archiveURI = &uri
	}
	return models.Upload{
		UploadID:         d.UploadID,
		Filename:         d.Filename,
		Month:            d.Month,
		Year:             d.Year,
		AccountNumber:    d.AccountNumber,
		AccountName:      d.AccountName,
		Currency:         d.Currency,
		OpeningBalance:   d.OpeningBalance,
		ClosingBalance:   d.ClosingBalance,
		TotalCredit:      d.TotalCredit,
		TotalDebit:       d.TotalDebit,
		TransactionCount: d.TransactionCount,
		Status:           models.UploadStatus(d.Status),
		ArchiveURI:       archiveURI,
		UploadedAt:       d.UploadedAt,
	}
}

// ToDomainUpload converts a model Upload to a domain Upload
func ToDomainUpload(m models.Upload) domain.Upload {
	d := domain.Upload{
		UploadID:         m.UploadID,
		Filename:         m.Filename,
		Month:            m.Month,
		Year:             m.Year,
		AccountNumber:    m.AccountNumber,
		AccountName:      m.AccountName,
		Currency:         m.Currency,
		OpeningBalance:   m.OpeningBalance,
		ClosingBalance:   m.ClosingBalance,
		TotalCredit:      m.TotalCredit,
		TotalDebit:       m.TotalDebit,
		TransactionCount: m.TransactionCount,
		Status:           domain.UploadStatus(m.Status),
		UploadedAt:       m.UploadedAt,
	}
	if m.ArchiveURI != nil {
		d.ArchiveURI = *m.ArchiveURI
	}
	return d
}

// ToDomainUploadSlice converts a slice of model Uploads to domain Uploads
func ToDomainUploadSlice(ms []models.Upload) []domain.Upload {
	if ms == nil {
		return []domain.Upload{}
	}
	ds := make([]domain.Upload, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUpload(m)
	}
	return ds
}
