package recommend

import (
	"context"
	"fmt"
	"testing"
	"time"

	"shopsight/domain"
)

type fakeActivityRepo struct {
	events    []domain.CategoryActivity
	purchased []uint64
	counts    []domain.ProductActivityCount
}

func (f *fakeActivityRepo) FindCategoryActivity(ctx context.Context, userID uint) ([]domain.CategoryActivity, error) {
	return f.events, nil
}

func (f *fakeActivityRepo) PurchasedProductIDs(ctx context.Context, userID uint) ([]uint64, error) {
	return f.purchased, nil
}

func (f *fakeActivityRepo) TopProductsByActivity(ctx context.Context, limit int) ([]domain.ProductActivityCount, error) {
	if limit < len(f.counts) {
		return f.counts[:limit], nil
	}
	return f.counts, nil
}

type fakeProductRepo struct {
	products []domain.Product
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uint64) (domain.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("product not found")
}

func (f *fakeProductRepo) FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error) {
	want := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []domain.Product
	for _, p := range f.products {
		if want[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) FindByCategories(ctx context.Context, categories []string, excludeIDs []uint64, limit int) ([]domain.Product, error) {
	cats := make(map[string]bool, len(categories))
	for _, c := range categories {
		cats[c] = true
	}
	excluded := make(map[uint64]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}

	var out []domain.Product
	for _, p := range f.products {
		if len(out) >= limit {
			break
		}
		if cats[p.ProductCategory] && !excluded[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) FindByCategory(ctx context.Context, category string, excludeID uint64, limit int) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range f.products {
		if len(out) >= limit {
			break
		}
		if p.ProductCategory == category && p.ID != excludeID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) FindNewest(ctx context.Context, limit int) ([]domain.Product, error) {
	if limit < len(f.products) {
		return f.products[:limit], nil
	}
	return f.products, nil
}

type fakeRecoRepo struct {
	stored map[uint][]domain.Recommendation
}

func newFakeRecoRepo() *fakeRecoRepo {
	return &fakeRecoRepo{stored: make(map[uint][]domain.Recommendation)}
}

func (f *fakeRecoRepo) ReplaceForUser(ctx context.Context, userID uint, recs []domain.Recommendation) error {
	f.stored[userID] = recs
	return nil
}

func (f *fakeRecoRepo) FindByUser(ctx context.Context, userID uint, limit int) ([]domain.Recommendation, error) {
	recs := f.stored[userID]
	if limit < len(recs) {
		return recs[:limit], nil
	}
	return recs, nil
}

func catalog(category string, firstID uint64, n int) []domain.Product {
	out := make([]domain.Product, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Product{
			ID:              firstID + uint64(i),
			ProductName:     fmt.Sprintf("%s-%d", category, i),
			ProductCategory: category,
			Price:           10,
			Stock:           10,
			CreatedAt:       time.Now(),
		})
	}
	return out
}

func TestGenerate_ExcludesPurchased(t *testing.T) {
	activityRepo := &fakeActivityRepo{
		events: []domain.CategoryActivity{
			{Action: domain.ActionPurchase, ProductCategory: "plants"},
		},
		purchased: []uint64{1},
	}
	productRepo := &fakeProductRepo{products: catalog("plants", 1, 5)}
	recoRepo := newFakeRecoRepo()

	svc := NewRecommendService(activityRepo, productRepo, recoRepo)

	recs, err := svc.Generate(context.Background(), 7)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, r := range recs {
		if r.ProductID == 1 {
			t.Fatalf("purchased product 1 must not be recommended")
		}
	}
	if len(recs) != 4 {
		t.Fatalf("got %d recommendations, want 4", len(recs))
	}
}

func TestGenerate_CapsAtTwenty(t *testing.T) {
	activityRepo := &fakeActivityRepo{
		events: []domain.CategoryActivity{
			{Action: domain.ActionView, ProductCategory: "plants"},
		},
	}
	productRepo := &fakeProductRepo{products: catalog("plants", 1, 50)}
	recoRepo := newFakeRecoRepo()

	svc := NewRecommendService(activityRepo, productRepo, recoRepo)

	recs, err := svc.Generate(context.Background(), 7)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(recs) != 20 {
		t.Fatalf("got %d recommendations, want 20", len(recs))
	}
}

func TestGenerate_ScoreNormalized(t *testing.T) {
	// 2 purchases = raw 20, normalized to 2.0
	activityRepo := &fakeActivityRepo{
		events: []domain.CategoryActivity{
			{Action: domain.ActionPurchase, ProductCategory: "plants"},
			{Action: domain.ActionPurchase, ProductCategory: "plants"},
		},
	}
	productRepo := &fakeProductRepo{products: catalog("plants", 1, 3)}
	recoRepo := newFakeRecoRepo()

	svc := NewRecommendService(activityRepo, productRepo, recoRepo)

	recs, err := svc.Generate(context.Background(), 7)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("expected recommendations")
	}
	for _, r := range recs {
		if r.Score != 2.0 {
			t.Fatalf("score = %v, want 2.0", r.Score)
		}
	}
}

func TestGenerate_NoActivityClearsExisting(t *testing.T) {
	activityRepo := &fakeActivityRepo{}
	productRepo := &fakeProductRepo{products: catalog("plants", 1, 5)}
	recoRepo := newFakeRecoRepo()
	recoRepo.stored[7] = []domain.Recommendation{{UserID: 7, ProductID: 1, Score: 1}}

	svc := NewRecommendService(activityRepo, productRepo, recoRepo)

	recs, err := svc.Generate(context.Background(), 7)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("got %d recommendations, want 0", len(recs))
	}
	if len(recoRepo.stored[7]) != 0 {
		t.Fatalf("stale recommendations left behind: %v", recoRepo.stored[7])
	}
}

func TestGenerate_TopThreeCategoriesOnly(t *testing.T) {
	activityRepo := &fakeActivityRepo{
		events: []domain.CategoryActivity{
			{Action: domain.ActionPurchase, ProductCategory: "a"},
			{Action: domain.ActionPurchase, ProductCategory: "b"},
			{Action: domain.ActionPurchase, ProductCategory: "c"},
			{Action: domain.ActionView, ProductCategory: "d"},
		},
	}
	products := catalog("a", 1, 2)
	products = append(products, catalog("b", 10, 2)...)
	products = append(products, catalog("c", 20, 2)...)
	products = append(products, catalog("d", 30, 2)...)
	productRepo := &fakeProductRepo{products: products}
	recoRepo := newFakeRecoRepo()

	svc := NewRecommendService(activityRepo, productRepo, recoRepo)

	recs, err := svc.Generate(context.Background(), 7)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, r := range recs {
		if r.ProductID >= 30 {
			t.Fatalf("product %d from fourth-ranked category must not appear", r.ProductID)
		}
	}
	if len(recs) != 6 {
		t.Fatalf("got %d recommendations, want 6", len(recs))
	}
}

func TestSimilar_ExcludesSelfAndLimitsToSix(t *testing.T) {
	productRepo := &fakeProductRepo{products: catalog("plants", 1, 10)}

	svc := NewRecommendService(&fakeActivityRepo{}, productRepo, newFakeRecoRepo())

	similar, err := svc.Similar(context.Background(), 1)
	if err != nil {
		t.Fatalf("Similar: %v", err)
	}
	if len(similar) != 6 {
		t.Fatalf("got %d similar products, want 6", len(similar))
	}
	for _, p := range similar {
		if p.ID == 1 {
			t.Fatalf("target product must not appear in its own similar list")
		}
	}
}

func TestSimilar_UnknownProduct(t *testing.T) {
	svc := NewRecommendService(&fakeActivityRepo{}, &fakeProductRepo{}, newFakeRecoRepo())

	if _, err := svc.Similar(context.Background(), 99); err == nil {
		t.Fatal("expected error for unknown product")
	}
}

func TestPopular_RankedByActivity(t *testing.T) {
	activityRepo := &fakeActivityRepo{
		counts: []domain.ProductActivityCount{
			{ProductID: 3, EventCount: 50},
			{ProductID: 1, EventCount: 30},
			{ProductID: 2, EventCount: 10},
			{ProductID: 4, EventCount: 5},
			{ProductID: 5, EventCount: 1},
		},
	}
	productRepo := &fakeProductRepo{products: catalog("plants", 1, 5)}

	svc := NewRecommendService(activityRepo, productRepo, newFakeRecoRepo())

	popular, err := svc.Popular(context.Background(), 5)
	if err != nil {
		t.Fatalf("Popular: %v", err)
	}
	if len(popular) != 5 {
		t.Fatalf("got %d popular products, want 5", len(popular))
	}
	if popular[0].ID != 3 || popular[1].ID != 1 {
		t.Fatalf("ordering wrong: got %d, %d at the top, want 3, 1", popular[0].ID, popular[1].ID)
	}
}

func TestPopular_FallsBackToNewest(t *testing.T) {
	// only two products have activity, fallback fills the rest
	activityRepo := &fakeActivityRepo{
		counts: []domain.ProductActivityCount{
			{ProductID: 1, EventCount: 9},
			{ProductID: 2, EventCount: 4},
		},
	}
	productRepo := &fakeProductRepo{products: catalog("plants", 1, 8)}

	svc := NewRecommendService(activityRepo, productRepo, newFakeRecoRepo())

	popular, err := svc.Popular(context.Background(), 5)
	if err != nil {
		t.Fatalf("Popular: %v", err)
	}
	if len(popular) != 5 {
		t.Fatalf("got %d popular products, want 5", len(popular))
	}

	seen := make(map[uint64]bool)
	for _, p := range popular {
		if seen[p.ID] {
			t.Fatalf("duplicate product %d in popular list", p.ID)
		}
		seen[p.ID] = true
	}
	if popular[0].ID != 1 || popular[1].ID != 2 {
		t.Fatalf("activity-ranked products must come first, got %d, %d", popular[0].ID, popular[1].ID)
	}
}
