package pgsql

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/SscSPs/fintrack/internal/apperrors"
	"github.com/SscSPs/fintrack/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack/internal/core/ports/repositories"
	"github.com/SscSPs/fintrack/internal/models"
	"github.com/SscSPs/fintrack/internal/utils/mapping"
	"github.com/SscSPs/fintrack/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultPageSize applies when a listing does not set a limit.
const DefaultPageSize = 50

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for statement transactions.
func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `
	t.transaction_id, t.upload_id, t.position, t.transaction_date, t.description, t.merchant,
	t.branch, t.amount, t.direction, t.balance, t.category_id, t.notes, t.created_at, t.updated_at`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.UploadID,
		&m.Position,
		&m.TransactionDate,
		&m.Description,
		&m.Merchant,
		&m.Branch,
		&m.Amount,
		&m.Direction,
		&m.Balance,
		&m.CategoryID,
		&m.Notes,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func collectTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	defer rows.Close()
	out := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}
	return out, nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions t WHERE t.transaction_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}
	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

// FindTransactionsByUploadID retrieves all transactions of an upload in statement order.
func (r *PgxTransactionRepository) FindTransactionsByUploadID(ctx context.Context, uploadID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions t WHERE t.upload_id = $1 ORDER BY t.position;`
	rows, err := r.Pool.Query(ctx, query, uploadID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions for upload "+uploadID, err)
	}
	ms, err := collectTransactions(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

// ListCommittedTransactions lists transactions of committed uploads, newest first, with
// keyset pagination on (transaction_date, created_at, transaction_id).
func (r *PgxTransactionRepository) ListCommittedTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	conditions := []string{"u.status = 'committed'"}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Month > 0 {
		conditions = append(conditions, "u.month = "+arg(filter.Month))
	}
	if filter.Year > 0 {
		conditions = append(conditions, "u.year = "+arg(filter.Year))
	}
	if filter.CategoryID != nil {
		conditions = append(conditions, "t.category_id = "+arg(*filter.CategoryID))
	}
	if filter.Direction != "" {
		conditions = append(conditions, "t.direction = "+arg(string(filter.Direction)))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		p := arg("%" + s + "%")
		conditions = append(conditions, "(t.description ILIKE "+p+" OR t.merchant ILIKE "+p+")")
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		lastDate, lastCreatedAt, lastID, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", errors.Join(apperrors.ErrValidation, err))
		}
		conditions = append(conditions, "(t.transaction_date, t.created_at, t.transaction_id) < ("+
			arg(lastDate)+", "+arg(lastCreatedAt)+", "+arg(lastID)+"::uuid)")
	}

	query := `SELECT ` + transactionColumns + `
		FROM transactions t
		JOIN uploads u ON u.upload_id = t.upload_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY t.transaction_date DESC, t.created_at DESC, t.transaction_id DESC
		LIMIT ` + arg(fetchLimit) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query committed transactions", err)
	}
	ms, err := collectTransactions(rows)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(ms) > limit {
		last := ms[limit-1]
		token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt, last.TransactionID)
		nextTokenVal = &token
		ms = ms[:limit]
	}
	return mapping.ToDomainTransactionSlice(ms), nextTokenVal, nil
}

// UpdateTransaction writes the editable fields. With requirePending the ownership check
// and the write are a single statement.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, requirePending bool) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions t SET
			transaction_date = $2, description = $3, merchant = $4, amount = $5,
			direction = $6, category_id = $7, notes = $8, updated_at = $9
		WHERE t.transaction_id = $1
		  AND (NOT $10::boolean OR EXISTS (
			SELECT 1 FROM uploads u WHERE u.upload_id = t.upload_id AND u.status = 'pending'));
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.TransactionDate,
		m.Description,
		m.Merchant,
		m.Amount,
		m.Direction,
		m.CategoryID,
		m.Notes,
		m.UpdatedAt,
		requirePending,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewValidationError("category does not exist")
		}
		return apperrors.NewAppError(500, "failed to update transaction "+m.TransactionID, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM transactions WHERE transaction_id = $1);`, m.TransactionID).Scan(&exists); err != nil {
		return apperrors.NewAppError(500, "failed to check transaction "+m.TransactionID, err)
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return apperrors.NewConflictError("transaction " + m.TransactionID + " belongs to a committed upload")
}

// ApplyCategories fills category_id only where it is still NULL.
func (r *PgxTransactionRepository) ApplyCategories(ctx context.Context, assignments map[string]int64) (int, error) {
	if len(assignments) == 0 {
		return 0, nil
	}
	batch := &pgx.Batch{}
	query := `
		UPDATE transactions SET category_id = $2, updated_at = NOW()
		WHERE transaction_id = $1 AND category_id IS NULL
		  AND EXISTS (SELECT 1 FROM categories WHERE category_id = $2);
	`
	for transactionID, categoryID := range assignments {
		batch.Queue(query, transactionID, categoryID)
	}

	br := r.Pool.SendBatch(ctx, batch)
	defer br.Close()

	updated := 0
	for range assignments {
		tag, err := br.Exec()
		if err != nil {
			return updated, apperrors.NewAppError(500, "failed to apply category suggestions", err)
		}
		updated += int(tag.RowsAffected())
	}
	return updated, nil
}
