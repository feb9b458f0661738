package postgres

import (
	"context"
	"fmt"
	"shopsight/domain"
	"time"

	"gorm.io/gorm"
)

// ReportRepository is the read-side aggregation layer over completed order
// line items.
type ReportRepository struct {
	DB *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{
		DB: db,
	}
}

func (r *ReportRepository) salesBase(ctx context.Context, filter domain.ReportFilter) *gorm.DB {
	query := r.DB.WithContext(ctx).
		Table("order_items AS oi").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Joins("JOIN products p ON p.id = oi.product_id").
		Where("o.order_status = ?", domain.OrderStatusCompleted)

	if filter.StartDate != nil {
		query = query.Where("o.created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("o.created_at <= ?", *filter.EndDate)
	}
	if filter.Category != "" {
		query = query.Where("p.product_category = ?", filter.Category)
	}

	return query
}

func (r *ReportRepository) SalesByCategory(ctx context.Context, filter domain.ReportFilter) ([]domain.CategorySales, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.CategorySales
	err := r.salesBase(ctx, filter).
		Select("p.product_category AS category, " +
			"SUM(oi.quantity * oi.price) AS revenue, " +
			"SUM(oi.quantity) AS quantity, " +
			"COUNT(DISTINCT oi.order_id) AS order_count").
		Group("p.product_category").
		Order("revenue DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales by category: %w", err)
	}

	return rows, nil
}

// SalesByPeriod groups completed order items into DATE_TRUNC buckets.
// unit and format must come from the service-side whitelist; they are
// interpolated into the SQL.
func (r *ReportRepository) SalesByPeriod(ctx context.Context, filter domain.ReportFilter, unit, format string) ([]domain.PeriodSales, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	bucketExpr := fmt.Sprintf("TO_CHAR(DATE_TRUNC('%s', o.created_at), '%s')", unit, format)

	var rows []domain.PeriodSales
	err := r.salesBase(ctx, filter).
		Select(bucketExpr + " AS bucket, " +
			"SUM(oi.quantity * oi.price) AS revenue, " +
			"SUM(oi.quantity) AS quantity, " +
			"COUNT(DISTINCT oi.order_id) AS order_count").
		Group("bucket").
		Order("bucket ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales by period: %w", err)
	}

	return rows, nil
}

// SoldSince sums quantity per product over completed orders created at or
// after the cutoff. Feeds the stockout estimate.
func (r *ReportRepository) SoldSince(ctx context.Context, since time.Time) ([]domain.ProductSold, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.ProductSold
	err := r.DB.WithContext(ctx).
		Table("order_items AS oi").
		Select("oi.product_id, SUM(oi.quantity) AS sold").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Where("o.order_status = ? AND o.created_at >= ?", domain.OrderStatusCompleted, since).
		Group("oi.product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sold quantities: %w", err)
	}

	return rows, nil
}
