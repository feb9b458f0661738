package recommend

import (
	"testing"

	"shopsight/domain"
)

func intPtr(v int) *int { return &v }

func TestScoreCategories_Weights(t *testing.T) {
	events := []domain.CategoryActivity{
		{Action: domain.ActionView, ProductCategory: "plants"},
		{Action: domain.ActionView, ProductCategory: "plants"},
		{Action: domain.ActionPurchase, ProductCategory: "tools"},
		{Action: domain.ActionStay, DurationSeconds: intPtr(90), ProductCategory: "seeds"},
	}

	scores := ScoreCategories(events)

	if got := scores["plants"]; got != 2.0 {
		t.Fatalf("plants score = %v, want 2.0", got)
	}
	if got := scores["tools"]; got != 10.0 {
		t.Fatalf("tools score = %v, want 10.0", got)
	}
	if got := scores["seeds"]; got != 1.5 {
		t.Fatalf("seeds score = %v, want 1.5", got)
	}
}

func TestScoreCategories_StayCapped(t *testing.T) {
	// 600s is 10 minutes, must be capped at 5
	events := []domain.CategoryActivity{
		{Action: domain.ActionStay, DurationSeconds: intPtr(600), ProductCategory: "plants"},
	}

	scores := ScoreCategories(events)
	if got := scores["plants"]; got != 5.0 {
		t.Fatalf("capped stay score = %v, want 5.0", got)
	}
}

func TestScoreCategories_PurchaseOutweighsViews(t *testing.T) {
	events := []domain.CategoryActivity{
		{Action: domain.ActionPurchase, ProductCategory: "tools"},
	}
	for i := 0; i < 9; i++ {
		events = append(events, domain.CategoryActivity{Action: domain.ActionView, ProductCategory: "plants"})
	}

	scores := ScoreCategories(events)
	if scores["tools"] <= scores["plants"] {
		t.Fatalf("one purchase (%v) should outweigh nine views (%v)", scores["tools"], scores["plants"])
	}
}

func TestScoreCategories_IgnoresMalformed(t *testing.T) {
	events := []domain.CategoryActivity{
		{Action: domain.ActionStay, DurationSeconds: nil, ProductCategory: "plants"},
		{Action: domain.ActionView, ProductCategory: ""},
		{Action: "unknown", ProductCategory: "plants"},
	}

	scores := ScoreCategories(events)
	if len(scores) != 0 {
		t.Fatalf("expected empty scores, got %v", scores)
	}
}

func TestScoreCategories_Empty(t *testing.T) {
	scores := ScoreCategories(nil)
	if len(scores) != 0 {
		t.Fatalf("expected empty scores for no activity, got %v", scores)
	}
}

func TestTopCategories_Ordering(t *testing.T) {
	scores := map[string]float64{
		"plants": 12.0,
		"tools":  3.0,
		"seeds":  25.5,
		"pots":   1.0,
	}

	top := TopCategories(scores, 3)
	want := []string{"seeds", "plants", "tools"}

	if len(top) != len(want) {
		t.Fatalf("got %d categories, want %d", len(top), len(want))
	}
	for i := range want {
		if top[i] != want[i] {
			t.Fatalf("top[%d] = %q, want %q", i, top[i], want[i])
		}
	}
}

func TestTopCategories_LexicographicTieBreak(t *testing.T) {
	scores := map[string]float64{
		"c": 0,
		"a": 0,
		"b": 0,
	}

	// all-zero scores must still produce a deterministic order
	for i := 0; i < 10; i++ {
		top := TopCategories(scores, 2)
		if len(top) != 2 || top[0] != "a" || top[1] != "b" {
			t.Fatalf("run %d: got %v, want [a b]", i, top)
		}
	}
}

func TestTopCategories_FewerThanN(t *testing.T) {
	top := TopCategories(map[string]float64{"plants": 1}, 3)
	if len(top) != 1 || top[0] != "plants" {
		t.Fatalf("got %v, want [plants]", top)
	}
}
