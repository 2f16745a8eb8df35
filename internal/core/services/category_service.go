package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/fintrack/internal/apperrors"
	"github.com/SscSPs/fintrack/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fintrack/internal/core/ports/services"
	"github.com/SscSPs/fintrack/internal/dto"
)

type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: repo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name must not be blank")
	}

	category, err := s.categoryRepo.CreateCategory(ctx, domain.Category{
		Name:      name,
		Color:     strings.ToUpper(req.Color),
		CreatedAt: s.Now(),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create category", slog.String("name", name))
		return nil, err
	}

	s.LogInfo(ctx, "Category created", slog.Int64("category_id", category.CategoryID), slog.String("name", name))
	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, categoryID int64, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name must not be blank")
		}
		category.Name = name
	}
	if req.Color != nil {
		category.Color = strings.ToUpper(*req.Color)
	}

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "Failed to update category", slog.Int64("category_id", categoryID))
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a user-created category. Transactions that referenced it
// become uncategorized.
func (s *categoryService) DeleteCategory(ctx context.Context, categoryID int64) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category.IsDefault {
		return apperrors.NewConflictError("default categories cannot be deleted")
	}
	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		s.LogError(ctx, err, "Failed to delete category", slog.Int64("category_id", categoryID))
		return err
	}
	s.LogInfo(ctx, "Category deleted", slog.Int64("category_id", categoryID))
	return nil
}
