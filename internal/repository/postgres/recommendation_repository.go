package postgres

import (
	"context"
	"fmt"
	"shopsight/domain"

	"gorm.io/gorm"
)

type RecommendationRepository struct {
	DB *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{
		DB: db,
	}
}

// ReplaceForUser swaps the user's recommendation set in one transaction so a
// mid-failure never leaves the user with zero rows.
func (r *RecommendationRepository) ReplaceForUser(ctx context.Context, userID uint, recs []domain.Recommendation) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&domain.Recommendation{}).Error; err != nil {
			return err
		}

		if len(recs) == 0 {
			return nil
		}

		return tx.Create(&recs).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace recommendations: %w", err)
	}

	return nil
}

func (r *RecommendationRepository) FindByUser(ctx context.Context, userID uint, limit int) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var recs []domain.Recommendation
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("score DESC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find recommendations: %w", err)
	}

	return recs, nil
}
