package recommend

import (
	"context"
	"errors"
	"fmt"
	"shopsight/domain"
	"shopsight/pkg/logger"
)

const (
	topCategoryCount   = 3
	maxRecommendations = 20
	similarLimit       = 6
	popularMinResults  = 5
	scoreDivisor       = 10.0
)

// ---- Repository interfaces ----

type ActivityRepository interface {
	FindCategoryActivity(ctx context.Context, userID uint) ([]domain.CategoryActivity, error)
	PurchasedProductIDs(ctx context.Context, userID uint) ([]uint64, error)
	TopProductsByActivity(ctx context.Context, limit int) ([]domain.ProductActivityCount, error)
}

type ProductRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
	FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error)
	FindByCategories(ctx context.Context, categories []string, excludeIDs []uint64, limit int) ([]domain.Product, error)
	FindByCategory(ctx context.Context, category string, excludeID uint64, limit int) ([]domain.Product, error)
	FindNewest(ctx context.Context, limit int) ([]domain.Product, error)
}

type RecommendationRepository interface {
	ReplaceForUser(ctx context.Context, userID uint, recs []domain.Recommendation) error
	FindByUser(ctx context.Context, userID uint, limit int) ([]domain.Recommendation, error)
}

type RecommendService struct {
	activityRepo ActivityRepository
	productRepo  ProductRepository
	recoRepo     RecommendationRepository
}

func NewRecommendService(
	activityRepo ActivityRepository,
	productRepo ProductRepository,
	recoRepo RecommendationRepository,
) *RecommendService {
	return &RecommendService{
		activityRepo: activityRepo,
		productRepo:  productRepo,
		recoRepo:     recoRepo,
	}
}

// Generate recomputes the user's recommendations from scratch from the full
// activity history and atomically replaces the persisted set. A user with no
// activity ends up with zero rows and no error.
func (s *RecommendService) Generate(ctx context.Context, userID uint) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	events, err := s.activityRepo.FindCategoryActivity(ctx, userID)
	if err != nil {
		RecommendationsGeneratedTotal.WithLabelValues("error").Inc()
		logger.Error("Failed to load activity history", err)
		return nil, err
	}

	scores := ScoreCategories(events)
	topCats := TopCategories(scores, topCategoryCount)

	recs := []domain.Recommendation{}
	if len(topCats) > 0 {
		purchased, err := s.activityRepo.PurchasedProductIDs(ctx, userID)
		if err != nil {
			RecommendationsGeneratedTotal.WithLabelValues("error").Inc()
			logger.Error("Failed to load purchased product ids", err)
			return nil, err
		}

		candidates, err := s.productRepo.FindByCategories(ctx, topCats, purchased, maxRecommendations)
		if err != nil {
			RecommendationsGeneratedTotal.WithLabelValues("error").Inc()
			logger.Error("Failed to load candidate products", err)
			return nil, err
		}

		for _, p := range candidates {
			recs = append(recs, domain.Recommendation{
				UserID:    userID,
				ProductID: p.ID,
				Score:     scores[p.ProductCategory] / scoreDivisor,
			})
		}
	}

	if err := s.recoRepo.ReplaceForUser(ctx, userID, recs); err != nil {
		RecommendationsGeneratedTotal.WithLabelValues("error").Inc()
		logger.Error("Failed to replace recommendations", err)
		return nil, err
	}

	RecommendationsGeneratedTotal.WithLabelValues("ok").Inc()
	RecommendationRowsWritten.Observe(float64(len(recs)))

	logger.Debug("recommendations generated",
		"user_id", userID,
		"categories", len(topCats),
		"rows", len(recs),
	)

	return recs, nil
}

func (s *RecommendService) GetForUser(ctx context.Context, userID uint, limit int) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = maxRecommendations
	}

	return s.recoRepo.FindByUser(ctx, userID, limit)
}

// Similar returns up to 6 products sharing the target's category, excluding
// the target itself. No further ranking.
func (s *RecommendService) Similar(ctx context.Context, productID uint64) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if productID == 0 {
		return nil, errors.New("invalid product id")
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	return s.productRepo.FindByCategory(ctx, product.ProductCategory, product.ID, similarLimit)
}

// Popular ranks products by activity-event count, padding with the newest
// products when fewer than 5 have any activity data.
func (s *RecommendService) Popular(ctx context.Context, limit int) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = popularMinResults
	}

	counts, err := s.activityRepo.TopProductsByActivity(ctx, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(counts))
	for _, c := range counts {
		ids = append(ids, c.ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// restore activity-count order lost by the IN query
	byID := make(map[uint64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	ranked := make([]domain.Product, 0, limit)
	seen := make(map[uint64]bool, limit)
	for _, c := range counts {
		if p, ok := byID[c.ProductID]; ok {
			ranked = append(ranked, p)
			seen[p.ID] = true
		}
	}

	if len(ranked) >= popularMinResults {
		return ranked, nil
	}

	newest, err := s.productRepo.FindNewest(ctx, limit)
	if err != nil {
		return nil, err
	}

	for _, p := range newest {
		if len(ranked) >= limit {
			break
		}
		if seen[p.ID] {
			continue
		}
		ranked = append(ranked, p)
		seen[p.ID] = true
	}

	return ranked, nil
}
