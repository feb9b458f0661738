package report

import (
	"context"
	"testing"
	"time"

	"shopsight/domain"
)

type fakeReportRepo struct {
	categoryRows []domain.CategorySales
	periodRows   []domain.PeriodSales
	sold         []domain.ProductSold

	lastUnit   string
	lastFormat string
}

func (f *fakeReportRepo) SalesByCategory(ctx context.Context, filter domain.ReportFilter) ([]domain.CategorySales, error) {
	return f.categoryRows, nil
}

func (f *fakeReportRepo) SalesByPeriod(ctx context.Context, filter domain.ReportFilter, unit, format string) ([]domain.PeriodSales, error) {
	f.lastUnit = unit
	f.lastFormat = format
	return f.periodRows, nil
}

func (f *fakeReportRepo) SoldSince(ctx context.Context, since time.Time) ([]domain.ProductSold, error) {
	return f.sold, nil
}

type fakeProductRepo struct {
	products []domain.Product
}

func (f *fakeProductRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	return f.products, nil
}

func TestClassifyStock(t *testing.T) {
	cases := []struct {
		stock int
		want  string
	}{
		{-3, domain.StockStatusOut},
		{0, domain.StockStatusOut},
		{1, domain.StockStatusLow},
		{4, domain.StockStatusLow},
		{5, domain.StockStatusNormal},
		{50, domain.StockStatusNormal},
		{51, domain.StockStatusExcess},
	}

	for _, tc := range cases {
		if got := classifyStock(tc.stock); got != tc.want {
			t.Fatalf("classifyStock(%d) = %q, want %q", tc.stock, got, tc.want)
		}
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestClassifyRisk(t *testing.T) {
	cases := []struct {
		name  string
		stock int
		days  *float64
		want  string
	}{
		{"burns out this week", 100, floatPtr(2.0), domain.RiskHigh},
		{"exactly seven days", 100, floatPtr(7.0), domain.RiskHigh},
		{"within two weeks", 100, floatPtr(10.0), domain.RiskMedium},
		{"plenty of runway", 100, floatPtr(60.0), domain.RiskLow},
		{"no sales, healthy stock", 100, nil, domain.RiskLow},
		{"no sales, low stock floors to medium", 3, nil, domain.RiskMedium},
		{"low stock with high urgency stays high", 3, floatPtr(1.0), domain.RiskHigh},
	}

	for _, tc := range cases {
		if got := classifyRisk(tc.stock, tc.days); got != tc.want {
			t.Fatalf("%s: classifyRisk(%d, %v) = %q, want %q", tc.name, tc.stock, tc.days, got, tc.want)
		}
	}
}

func TestSalesByCategory_RejectsInvertedDates(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{}, &fakeProductRepo{})

	start := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.SalesByCategory(context.Background(), domain.ReportFilter{
		StartDate: &start,
		EndDate:   &end,
	})
	if err == nil {
		t.Fatal("expected error for start date after end date")
	}
}

func TestSalesByPeriod_InvalidBucket(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{}, &fakeProductRepo{})

	_, err := svc.SalesByPeriod(context.Background(), domain.ReportFilter{}, "quarter")
	if err == nil {
		t.Fatal("expected error for unknown bucket")
	}
}

func TestSalesByPeriod_BucketMapping(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := NewReportService(repo, &fakeProductRepo{})

	cases := []struct {
		bucket     string
		wantUnit   string
		wantFormat string
	}{
		{"day", "day", "YYYY-MM-DD"},
		{"week", "week", "IYYY-\"W\"IW"},
		{"month", "month", "YYYY-MM"},
		{"year", "year", "YYYY"},
	}

	for _, tc := range cases {
		if _, err := svc.SalesByPeriod(context.Background(), domain.ReportFilter{}, tc.bucket); err != nil {
			t.Fatalf("SalesByPeriod(%q): %v", tc.bucket, err)
		}
		if repo.lastUnit != tc.wantUnit || repo.lastFormat != tc.wantFormat {
			t.Fatalf("bucket %q mapped to (%q, %q), want (%q, %q)",
				tc.bucket, repo.lastUnit, repo.lastFormat, tc.wantUnit, tc.wantFormat)
		}
	}
}

func TestInventoryStatus(t *testing.T) {
	productRepo := &fakeProductRepo{products: []domain.Product{
		{ID: 1, ProductName: "monstera", ProductCategory: "plants", Stock: 0},
		{ID: 2, ProductName: "trowel", ProductCategory: "tools", Stock: 3},
		{ID: 3, ProductName: "pot", ProductCategory: "pots", Stock: 30},
		{ID: 4, ProductName: "soil", ProductCategory: "soil", Stock: 500},
	}}

	svc := NewReportService(&fakeReportRepo{}, productRepo)

	rows, err := svc.InventoryStatus(context.Background())
	if err != nil {
		t.Fatalf("InventoryStatus: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}

	wantStatus := []string{
		domain.StockStatusOut,
		domain.StockStatusLow,
		domain.StockStatusNormal,
		domain.StockStatusExcess,
	}
	for i, w := range wantStatus {
		if rows[i].Status != w {
			t.Fatalf("row %d status = %q, want %q", i, rows[i].Status, w)
		}
	}
}

func TestInventoryAlerts(t *testing.T) {
	productRepo := &fakeProductRepo{products: []domain.Product{
		{ID: 1, ProductName: "monstera", ProductCategory: "plants", Stock: 100},
		{ID: 2, ProductName: "trowel", ProductCategory: "tools", Stock: 3},
	}}
	reportRepo := &fakeReportRepo{sold: []domain.ProductSold{
		{ProductID: 1, Sold: 1500}, // 50/day, two days of stock
	}}

	svc := NewReportService(reportRepo, productRepo)

	alerts, err := svc.InventoryAlerts(context.Background())
	if err != nil {
		t.Fatalf("InventoryAlerts: %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("got %d alerts, want 2", len(alerts))
	}

	fast := alerts[0]
	if fast.RiskLevel != domain.RiskHigh {
		t.Fatalf("fast seller risk = %q, want HIGH", fast.RiskLevel)
	}
	if fast.DaysUntilStockout == nil || *fast.DaysUntilStockout != 2.0 {
		t.Fatalf("fast seller days until stockout = %v, want 2.0", fast.DaysUntilStockout)
	}
	if fast.DailySalesRate != 50.0 {
		t.Fatalf("fast seller daily rate = %v, want 50.0", fast.DailySalesRate)
	}

	stale := alerts[1]
	if stale.DaysUntilStockout != nil {
		t.Fatalf("product with no sales must have nil days until stockout, got %v", *stale.DaysUntilStockout)
	}
	if stale.RiskLevel != domain.RiskMedium {
		t.Fatalf("low-stock stale product risk = %q, want MEDIUM", stale.RiskLevel)
	}
}
