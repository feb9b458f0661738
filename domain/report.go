package domain

import "time"

// Stock status is a report-time classification of Product.Stock, never
// stored state.
const (
	StockStatusOut    = "OUT_OF_STOCK"
	StockStatusLow    = "LOW_STOCK"
	StockStatusNormal = "NORMAL"
	StockStatusExcess = "EXCESS"
)

const (
	RiskLow    = "LOW"
	RiskMedium = "MEDIUM"
	RiskHigh   = "HIGH"
)

// ReportFilter is the optional window and category filter shared by the
// sales reports. Nil dates mean an open end.
type ReportFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Category  string
}

// CategorySales is one group-by-category row over completed order items.
type CategorySales struct {
	Category   string  `json:"category"`
	Revenue    float64 `json:"revenue"`
	Quantity   int64   `json:"quantity"`
	OrderCount int64   `json:"order_count"`
}

// PeriodSales is one time-bucketed row; Bucket is the string-formatted
// bucket key (e.g. "2026-08-31" for day buckets).
type PeriodSales struct {
	Bucket     string  `json:"bucket"`
	Revenue    float64 `json:"revenue"`
	Quantity   int64   `json:"quantity"`
	OrderCount int64   `json:"order_count"`
}

type InventoryStatus struct {
	ProductID   uint64 `json:"product_id"`
	ProductName string `json:"product_name"`
	Category    string `json:"category"`
	Stock       int    `json:"stock"`
	Status      string `json:"status"`
}

// InventoryAlert estimates stock depletion from the trailing 30 days of
// completed sales. DaysUntilStockout is nil when nothing sold.
type InventoryAlert struct {
	ProductID         uint64   `json:"product_id"`
	ProductName       string   `json:"product_name"`
	Category          string   `json:"category"`
	Stock             int      `json:"stock"`
	SoldLast30Days    int64    `json:"sold_last_30_days"`
	DailySalesRate    float64  `json:"daily_sales_rate"`
	DaysUntilStockout *float64 `json:"days_until_stockout,omitempty"`
	RiskLevel         string   `json:"risk_level"`
}

// ProductSold is one row of the trailing-window sold-quantity aggregation.
type ProductSold struct {
	ProductID uint64 `json:"product_id"`
	Sold      int64  `json:"sold"`
}
