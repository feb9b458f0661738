package postgres

import (
	"context"
	"fmt"
	"shopsight/domain"
	"time"

	"gorm.io/gorm"
)

type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{
		DB: db,
	}
}

func (r *ActivityRepository) Create(ctx context.Context, event *domain.ActivityEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to create activity event: %w", err)
	}

	return nil
}

func (r *ActivityRepository) FindByUser(ctx context.Context, userID uint, offset, limit int) ([]domain.ActivityEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var events []domain.ActivityEvent
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find activity events: %w", err)
	}

	return events, nil
}

// FindCategoryActivity returns the user's full activity history joined with
// the category of the product each event touched. Events without a product
// row carry no category signal and are skipped by the join.
func (r *ActivityRepository) FindCategoryActivity(ctx context.Context, userID uint) ([]domain.CategoryActivity, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.CategoryActivity
	err := r.DB.WithContext(ctx).
		Table("activity_events AS a").
		Select("a.action, a.duration_seconds, p.product_category").
		Joins("JOIN products p ON p.id = a.product_id").
		Where("a.user_id = ?", userID).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find category activity: %w", err)
	}

	return rows, nil
}

// PurchasedProductIDs lists every product the user has a purchase event for.
func (r *ActivityRepository) PurchasedProductIDs(ctx context.Context, userID uint) ([]uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var ids []uint64
	err := r.DB.WithContext(ctx).
		Model(&domain.ActivityEvent{}).
		Distinct("product_id").
		Where("user_id = ? AND action = ? AND product_id IS NOT NULL", userID, domain.ActionPurchase).
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find purchased product ids: %w", err)
	}

	return ids, nil
}

func (r *ActivityRepository) CountByProduct(ctx context.Context, productID uint64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var count int64
	err := r.DB.WithContext(ctx).
		Model(&domain.ActivityEvent{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count activity events: %w", err)
	}

	return count, nil
}

// TopProductsByActivity ranks products by total activity-event count.
func (r *ActivityRepository) TopProductsByActivity(ctx context.Context, limit int) ([]domain.ProductActivityCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.ProductActivityCount
	err := r.DB.WithContext(ctx).
		Model(&domain.ActivityEvent{}).
		Select("product_id, COUNT(*) AS event_count").
		Where("product_id IS NOT NULL").
		Group("product_id").
		Order("event_count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank products by activity: %w", err)
	}

	return rows, nil
}

// DeleteOlderThan is the retention purge, the only path that removes
// activity rows.
func (r *ActivityRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&domain.ActivityEvent{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to purge activity events: %w", result.Error)
	}

	return result.RowsAffected, nil
}
