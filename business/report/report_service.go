package report

import (
	"context"
	"errors"
	"fmt"
	"shopsight/domain"
	"shopsight/pkg/logger"
	"time"
)

const salesWindowDays = 30

// Stock thresholds: <=0 out of stock, <5 low, <=50 normal, >50 excess.
const (
	lowStockThreshold    = 5
	normalStockThreshold = 50
)

// Days-until-stockout risk buckets.
const (
	highRiskDays   = 7.0
	mediumRiskDays = 14.0
)

// ReportRepository contract interface
type ReportRepository interface {
	SalesByCategory(ctx context.Context, filter domain.ReportFilter) ([]domain.CategorySales, error)
	SalesByPeriod(ctx context.Context, filter domain.ReportFilter, unit, format string) ([]domain.PeriodSales, error)
	SoldSince(ctx context.Context, since time.Time) ([]domain.ProductSold, error)
}

type ProductRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
}

// bucket name -> DATE_TRUNC unit and TO_CHAR format. Doubles as the
// whitelist keeping user input out of the SQL.
var periodBuckets = map[string]struct {
	unit   string
	format string
}{
	"day":   {unit: "day", format: "YYYY-MM-DD"},
	"week":  {unit: "week", format: "IYYY-\"W\"IW"},
	"month": {unit: "month", format: "YYYY-MM"},
	"year":  {unit: "year", format: "YYYY"},
}

type reportService struct {
	reportRepo  ReportRepository
	productRepo ProductRepository
}

func NewReportService(reportRepo ReportRepository, productRepo ProductRepository) *reportService {
	return &reportService{
		reportRepo:  reportRepo,
		productRepo: productRepo,
	}
}

func validateFilter(filter domain.ReportFilter) error {
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.After(*filter.EndDate) {
		return errors.New("start date must not be after end date")
	}
	return nil
}

func (s *reportService) SalesByCategory(ctx context.Context, filter domain.ReportFilter) ([]domain.CategorySales, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	rows, err := s.reportRepo.SalesByCategory(ctx, filter)
	if err != nil {
		logger.Error("Failed to aggregate sales by category", err)
		return nil, err
	}

	return rows, nil
}

func (s *reportService) SalesByPeriod(ctx context.Context, filter domain.ReportFilter, bucket string) ([]domain.PeriodSales, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	b, ok := periodBuckets[bucket]
	if !ok {
		return nil, errors.New("invalid bucket: must be day, week, month or year")
	}

	rows, err := s.reportRepo.SalesByPeriod(ctx, filter, b.unit, b.format)
	if err != nil {
		logger.Error("Failed to aggregate sales by period", err)
		return nil, err
	}

	return rows, nil
}

// classifyStock maps a stock count onto the four fixed buckets.
func classifyStock(stock int) string {
	switch {
	case stock <= 0:
		return domain.StockStatusOut
	case stock < lowStockThreshold:
		return domain.StockStatusLow
	case stock <= normalStockThreshold:
		return domain.StockStatusNormal
	default:
		return domain.StockStatusExcess
	}
}

// classifyRisk buckets depletion urgency from the estimated days until
// stockout. Stock at or under the low threshold always raises the floor to
// MEDIUM, even with no recent sales.
func classifyRisk(stock int, daysUntilStockout *float64) string {
	risk := domain.RiskLow
	if daysUntilStockout != nil {
		switch {
		case *daysUntilStockout <= highRiskDays:
			risk = domain.RiskHigh
		case *daysUntilStockout <= mediumRiskDays:
			risk = domain.RiskMedium
		}
	}

	if stock <= lowStockThreshold && risk == domain.RiskLow {
		risk = domain.RiskMedium
	}

	return risk
}

func (s *reportService) InventoryStatus(ctx context.Context) ([]domain.InventoryStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to load products for inventory status", err)
		return nil, err
	}

	rows := make([]domain.InventoryStatus, 0, len(products))
	for _, p := range products {
		rows = append(rows, domain.InventoryStatus{
			ProductID:   p.ID,
			ProductName: p.ProductName,
			Category:    p.ProductCategory,
			Stock:       p.Stock,
			Status:      classifyStock(p.Stock),
		})
	}

	return rows, nil
}

// InventoryAlerts estimates days until stockout from the trailing 30 days of
// completed sales and buckets each product into LOW/MEDIUM/HIGH risk.
func (s *reportService) InventoryAlerts(ctx context.Context) ([]domain.InventoryAlert, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to load products for inventory alerts", err)
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -salesWindowDays)
	sold, err := s.reportRepo.SoldSince(ctx, since)
	if err != nil {
		logger.Error("Failed to load sold quantities", err)
		return nil, err
	}

	soldByProduct := make(map[uint64]int64, len(sold))
	for _, row := range sold {
		soldByProduct[row.ProductID] = row.Sold
	}

	alerts := make([]domain.InventoryAlert, 0, len(products))
	for _, p := range products {
		sold30 := soldByProduct[p.ID]
		dailyRate := float64(sold30) / float64(salesWindowDays)

		var daysUntilStockout *float64
		if dailyRate > 0 {
			d := float64(p.Stock) / dailyRate
			daysUntilStockout = &d
		}

		alerts = append(alerts, domain.InventoryAlert{
			ProductID:         p.ID,
			ProductName:       p.ProductName,
			Category:          p.ProductCategory,
			Stock:             p.Stock,
			SoldLast30Days:    sold30,
			DailySalesRate:    dailyRate,
			DaysUntilStockout: daysUntilStockout,
			RiskLevel:         classifyRisk(p.Stock, daysUntilStockout),
		})
	}

	return alerts, nil
}
