package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/SscSPs/fintrack/internal/apperrors"
	"github.com/SscSPs/fintrack/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack/internal/core/ports/repositories"
	"github.com/SscSPs/fintrack/internal/models"
	"github.com/SscSPs/fintrack/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for categories.
func newPgxCategoryRepository(pool *pgxpool.Pool) *PgxCategoryRepository {
	return &PgxCategoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

// ListCategories returns all categories ordered by id, which keeps seeded defaults first.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.Pool.Query(ctx, `SELECT category_id, name, color, is_default, created_at FROM categories ORDER BY category_id;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query categories", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.CategoryID, &c.Name, &c.Color, &c.IsDefault, &c.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan category row", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating category rows", err)
	}
	return mapping.ToDomainCategorySlice(categories), nil
}

// FindCategoryByID retrieves a category by its ID.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error) {
	var c models.Category
	err := r.Pool.QueryRow(ctx,
		`SELECT category_id, name, color, is_default, created_at FROM categories WHERE category_id = $1;`,
		categoryID,
	).Scan(&c.CategoryID, &c.Name, &c.Color, &c.IsDefault, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find category "+strconv.FormatInt(categoryID, 10), err)
	}
	d := mapping.ToDomainCategory(c)
	return &d, nil
}

// CreateCategory inserts a category and returns it with its generated id.
func (r *PgxCategoryRepository) CreateCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	m := mapping.ToModelCategory(category)
	err := r.Pool.QueryRow(ctx, `
		INSERT INTO categories (name, color, is_default)
		VALUES ($1, $2, $3)
		RETURNING category_id, created_at;`,
		m.Name, m.Color, m.IsDefault,
	).Scan(&m.CategoryID, &m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewAppError(409, "category "+m.Name+" already exists", apperrors.ErrDuplicate)
		}
		return nil, apperrors.NewAppError(500, "failed to insert category", err)
	}
	d := mapping.ToDomainCategory(m)
	return &d, nil
}

// UpdateCategory overwrites name and color.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	tag, err := r.Pool.Exec(ctx, `UPDATE categories SET name = $2, color = $3 WHERE category_id = $1;`, m.CategoryID, m.Name, m.Color)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "category "+m.Name+" already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to update category", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCategory removes a category. The foreign key nulls category_id on its transactions.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM categories WHERE category_id = $1;`, categoryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete category", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
