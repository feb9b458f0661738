package postgres

import (
	"context"
	"errors"
	"fmt"
	"shopsight/domain"

	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint64) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	var product domain.Product

	err := r.DB.WithContext(ctx).First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, errors.New("product not found")
		}
		return domain.Product{}, fmt.Errorf("failed to find product: %w", err)
	}

	return product, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var products []domain.Product
	err := r.DB.WithContext(ctx).Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	var products []domain.Product
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products by ids: %w", err)
	}

	return products, nil
}

// FindByCategories returns products in any of the given categories,
// excluding the given product ids, capped at limit.
func (r *ProductRepository) FindByCategories(ctx context.Context, categories []string, excludeIDs []uint64, limit int) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if len(categories) == 0 {
		return []domain.Product{}, nil
	}

	query := r.DB.WithContext(ctx).Where("product_category IN ?", categories)
	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}

	var products []domain.Product
	if err := query.Limit(limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products by categories: %w", err)
	}

	return products, nil
}

// FindByCategory is the similar-products lookup: same category, excluding
// the product itself, no further ranking.
func (r *ProductRepository) FindByCategory(ctx context.Context, category string, excludeID uint64, limit int) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var products []domain.Product
	err := r.DB.WithContext(ctx).
		Where("product_category = ? AND id <> ?", category, excludeID).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products by category: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) FindNewest(ctx context.Context, limit int) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var products []domain.Product
	err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find newest products: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	var existingProduct domain.Product
	if err := r.DB.WithContext(ctx).First(&existingProduct, product.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("product not found")
		}
		return fmt.Errorf("failed to find product: %w", err)
	}

	updateData := map[string]interface{}{
		"category_id":      product.CategoryID,
		"product_name":     product.ProductName,
		"product_category": product.ProductCategory,
		"price":            product.Price,
		"stock":            product.Stock,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", product.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("product not found or already deleted")
	}

	return nil
}

// Delete removes the product together with its recommendation and activity
// rows in one transaction.
func (r *ProductRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&domain.Recommendation{}).Error; err != nil {
			return err
		}

		if err := tx.Where("product_id = ?", id).Delete(&domain.ActivityEvent{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&domain.Product{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errors.New("product not found or already deleted")
		}

		return nil
	})
	if err != nil {
		if err.Error() == "product not found or already deleted" {
			return err
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}
