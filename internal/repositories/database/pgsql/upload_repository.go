package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/fintrack/internal/apperrors"
	"github.com/SscSPs/fintrack/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack/internal/core/ports/repositories"
	"github.com/SscSPs/fintrack/internal/models"
	"github.com/SscSPs/fintrack/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUploadRepository struct {
	BaseRepository
}

// newPgxUploadRepository creates a new repository for statement uploads.
func newPgxUploadRepository(pool *pgxpool.Pool) *PgxUploadRepository {
	return &PgxUploadRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.UploadRepositoryFacade = (*PgxUploadRepository)(nil)

const uploadColumns = `
	upload_id, filename, month, year, account_number, account_name, currency,
	opening_balance, closing_balance, total_credit, total_debit, transaction_count,
	status, archive_uri, uploaded_at`

func scanUpload(row pgx.Row) (models.Upload, error) {
	var m models.Upload
	err := row.Scan(
		&m.UploadID,
		&m.Filename,
		&m.Month,
		&m.Year,
		&m.AccountNumber,
		&m.AccountName,
		&m.Currency,
		&m.OpeningBalance,
		&m.ClosingBalance,
		&m.TotalCredit,
		&m.TotalDebit,
		&m.TransactionCount,
		&m.Status,
		&m.ArchiveURI,
		&m.UploadedAt,
	)
	return m, err
}

// CreateUploadWithTransactions inserts the upload and its transactions in one database transaction.
func (r *PgxUploadRepository) CreateUploadWithTransactions(ctx context.Context, upload domain.Upload, transactions []domain.Transaction) error {
	m := mapping.ToModelUpload(upload)
	return r.WithinTx(ctx, func(tx pgx.Tx) error {
		return insertUploadTx(ctx, tx, m, transactions)
	})
}

func insertUploadTx(ctx context.Context, tx pgx.Tx, m models.Upload, transactions []domain.Transaction) error {
	uploadQuery := `
		INSERT INTO uploads (` + uploadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, uploadQuery,
		m.UploadID,
		m.Filename,
		m.Month,
		m.Year,
		m.AccountNumber,
		m.AccountName,
		m.Currency,
		m.OpeningBalance,
		m.ClosingBalance,
		m.TotalCredit,
		m.TotalDebit,
		m.TransactionCount,
		m.Status,
		m.ArchiveURI,
		m.UploadedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "upload "+m.UploadID+" already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert upload "+m.UploadID, err)
	}

	batch := &pgx.Batch{}
	txnQuery := `
		INSERT INTO transactions (
			transaction_id, upload_id, position, transaction_date, description, merchant, branch,
			amount, direction, balance, category_id, notes, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	for _, t := range transactions {
		mt := mapping.ToModelTransaction(t)
		batch.Queue(txnQuery,
			mt.TransactionID,
			mt.UploadID,
			mt.Position,
			mt.TransactionDate,
			mt.Description,
			mt.Merchant,
			mt.Branch,
			mt.Amount,
			mt.Direction,
			mt.Balance,
			mt.CategoryID,
			mt.Notes,
			mt.CreatedAt,
			mt.UpdatedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert transactions for upload "+m.UploadID, err)
	}
	return nil
}

// FindUploadByID retrieves an upload by its ID.
func (r *PgxUploadRepository) FindUploadByID(ctx context.Context, uploadID string) (*domain.Upload, error) {
	query := `SELECT ` + uploadColumns + ` FROM uploads WHERE upload_id = $1;`
	m, err := scanUpload(r.Pool.QueryRow(ctx, query, uploadID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find upload by ID "+uploadID, err)
	}
	d := mapping.ToDomainUpload(m)
	return &d, nil
}

// ListUploads returns uploads newest first.
func (r *PgxUploadRepository) ListUploads(ctx context.Context, status *domain.UploadStatus) ([]domain.Upload, error) {
	query := `SELECT ` + uploadColumns + ` FROM uploads`
	args := []interface{}{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, string(*status))
	}
	query += ` ORDER BY uploaded_at DESC, upload_id;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query uploads", err)
	}
	defer rows.Close()

	uploads := []models.Upload{}
	for rows.Next() {
		m, err := scanUpload(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan upload row", err)
		}
		uploads = append(uploads, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating upload rows", err)
	}
	return mapping.ToDomainUploadSlice(uploads), nil
}

// MarkUploadCommitted flips status in a single conditional UPDATE, so of two concurrent
// commits exactly one succeeds.
func (r *PgxUploadRepository) MarkUploadCommitted(ctx context.Context, uploadID string) (*domain.Upload, error) {
	query := `
		UPDATE uploads SET status = 'committed'
		WHERE upload_id = $1 AND status = 'pending'
		RETURNING ` + uploadColumns + `;`
	m, err := scanUpload(r.Pool.QueryRow(ctx, query, uploadID))
	if err == nil {
		d := mapping.ToDomainUpload(m)
		return &d, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewAppError(500, "failed to commit upload "+uploadID, err)
	}
	return nil, r.notPendingError(ctx, uploadID)
}

// DeletePendingUpload deletes a pending upload; transactions go with it by cascade.
func (r *PgxUploadRepository) DeletePendingUpload(ctx context.Context, uploadID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM uploads WHERE upload_id = $1 AND status = 'pending';`, uploadID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete upload "+uploadID, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	return r.notPendingError(ctx, uploadID)
}

// notPendingError explains why a conditional write on a pending upload matched nothing.
func (r *PgxUploadRepository) notPendingError(ctx context.Context, uploadID string) error {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM uploads WHERE upload_id = $1);`, uploadID).Scan(&exists)
	if err != nil {
		return apperrors.NewAppError(500, "failed to check upload "+uploadID, err)
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return apperrors.NewConflictError("upload " + uploadID + " is already committed")
}
