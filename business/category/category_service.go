package category

import (
	"context"
	"errors"
	"fmt"
	"shopsight/domain"
	"shopsight/pkg/logger"
	"strings"
)

// CategoryRepository contract interface
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	FindByID(ctx context.Context, id uint64) (domain.Category, error)
	FindAll(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id uint64) error
}

// Category names key the affinity scorer and the product validation Lookup,
// so the service enforces name uniqueness here rather than relying on a DB
// constraint. Name changes only reach the Lookup on the next startup.
type categoryService struct {
	categoryRepo CategoryRepository
}

func NewCategoryService(categoryRepo CategoryRepository) *categoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
	}
}

func (s *categoryService) GetAllCategories(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all categories")
		return nil, fmt.Errorf("context error: %w", err)
	}

	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all categories", err)
		return nil, err
	}

	return categories, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id uint64) (domain.Category, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get category by id")
		return domain.Category{}, fmt.Errorf("context error: %w", err)
	}

	if id == 0 {
		logger.Error("Invalid category id")
		return domain.Category{}, errors.New("invalid category id")
	}

	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find category", err)
		return domain.Category{}, err
	}

	return category, nil
}

// nameTaken reports whether another category already uses the name.
// Case-insensitive: "Plants" and "plants" would split one real category's
// affinity scores.
func (s *categoryService) nameTaken(ctx context.Context, name string, excludeID uint64) (bool, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return false, err
	}

	for _, c := range categories {
		if c.CategoryID == excludeID {
			continue
		}
		if strings.EqualFold(c.ProductCategory, name) {
			return true, nil
		}
	}

	return false, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create category")
		return nil, fmt.Errorf("context error: %w", err)
	}

	category.ProductCategory = strings.TrimSpace(category.ProductCategory)
	if category.ProductCategory == "" {
		logger.Error("Invalid category data: product category is required")
		return nil, errors.New("product category is required")
	}

	taken, err := s.nameTaken(ctx, category.ProductCategory, 0)
	if err != nil {
		logger.Error("Failed to check category name", err)
		return nil, err
	}
	if taken {
		logger.Error("Category name already exists", "name", category.ProductCategory)
		return nil, errors.New("category already exists")
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		logger.Error("failed to create new category", err)
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	logger.Info("category created", "name", category.ProductCategory)

	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating category")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if category.CategoryID == 0 {
		logger.Error("Invalid category data: ID is required")
		return nil, errors.New("category ID is required")
	}

	category.ProductCategory = strings.TrimSpace(category.ProductCategory)
	if category.ProductCategory == "" {
		logger.Error("Invalid category data: product category is required")
		return nil, errors.New("product category is required")
	}

	if _, err := s.categoryRepo.FindByID(ctx, category.CategoryID); err != nil {
		logger.Error("category not found", err)
		return nil, errors.New("category not found")
	}

	taken, err := s.nameTaken(ctx, category.ProductCategory, category.CategoryID)
	if err != nil {
		logger.Error("Failed to check category name", err)
		return nil, err
	}
	if taken {
		logger.Error("Category name already exists", "name", category.ProductCategory)
		return nil, errors.New("category already exists")
	}

	// Renaming does not rewrite products.product_category; existing products
	// keep the old name until they are updated themselves.
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		logger.Error("failed to update category", err)
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	updatedCategory, err := s.categoryRepo.FindByID(ctx, category.CategoryID)
	if err != nil {
		logger.Error("failed to fetch updated category", err)
		return nil, fmt.Errorf("failed to fetch updated category: %w", err)
	}

	logger.Info("category updated", "name", updatedCategory.ProductCategory)

	return &updatedCategory, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id uint64) error {
	if id == 0 {
		logger.Error("Invalid category id when deleting category")
		return errors.New("invalid category id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting category")
		return fmt.Errorf("context error: %w", err)
	}

	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		logger.Error("category not found", err)
		return errors.New("category not found")
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete category", err)
		return fmt.Errorf("failed to delete category: %w", err)
	}

	logger.Info("category deleted", "category_id", id)

	return nil
}
