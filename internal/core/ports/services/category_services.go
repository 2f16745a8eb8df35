package services

import (
	"context"

	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/SscSPs/fintrack/internal/dto"
)

// CategoryReaderSvc defines read operations for categories.
type CategoryReaderSvc interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// CategoryWriterSvc defines write operations for categories.
type CategoryWriterSvc interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID int64, req dto.UpdateCategoryRequest) (*domain.Category, error)
	// DeleteCategory refuses seeded default categories with apperrors.ErrStateConflict.
	DeleteCategory(ctx context.Context, categoryID int64) error
}

// CategorySvcFacade combines category reads and writes.
type CategorySvcFacade interface {
	CategoryReaderSvc
	CategoryWriterSvc
}
