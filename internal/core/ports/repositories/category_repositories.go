package repositories

import (
	"context"

	"github.com/SscSPs/fintrack/internal/core/domain"
)

// CategoryReader defines read operations for categories.
type CategoryReader interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error)
}

// CategoryWriter defines write operations for categories.
type CategoryWriter interface {
	// CreateCategory assigns the id. Duplicate names return apperrors.ErrDuplicate.
	CreateCategory(ctx context.Context, category domain.Category) (*domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) error
	// DeleteCategory clears the category from transactions before removing it.
	DeleteCategory(ctx context.Context, categoryID int64) error
}

// CategoryRepositoryFacade combines category reads and writes.
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
