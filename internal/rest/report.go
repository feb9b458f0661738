package rest

import (
	"context"
	"net/http"
	"shopsight/domain"
	"shopsight/pkg/logger"
	"shopsight/pkg/metrics"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

type (
	ReportHandler struct {
		validate      *validator.Validate
		reportService ReportService
		timeout       time.Duration
	}

	ReportService interface {
		SalesByCategory(ctx context.Context, filter domain.ReportFilter) ([]domain.CategorySales, error)
		SalesByPeriod(ctx context.Context, filter domain.ReportFilter, bucket string) ([]domain.PeriodSales, error)
		InventoryStatus(ctx context.Context) ([]domain.InventoryStatus, error)
		InventoryAlerts(ctx context.Context) ([]domain.InventoryAlert, error)
	}

	SalesReportQuery struct {
		StartDate string `query:"startDate"`
		EndDate   string `query:"endDate"`
		Category  string `query:"category"`
		Bucket    string `query:"bucket" validate:"omitempty,oneof=day week month year"`
	}
)

func NewReportHandler(reportService ReportService) *ReportHandler {
	return &ReportHandler{
		validate:      validator.New(),
		reportService: reportService,
		timeout:       15 * time.Second,
	}
}

func (q SalesReportQuery) filter() (domain.ReportFilter, error) {
	var filter domain.ReportFilter

	if q.StartDate != "" {
		t, err := time.Parse(dateLayout, q.StartDate)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &t
	}

	if q.EndDate != "" {
		t, err := time.Parse(dateLayout, q.EndDate)
		if err != nil {
			return filter, err
		}
		// inclusive through the end of the day
		t = t.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &t
	}

	filter.Category = q.Category

	return filter, nil
}

// Sales serves both report shapes: grouped by category when no bucket is
// given, time-bucketed otherwise.
func (h *ReportHandler) Sales(c echo.Context) error {
	var q SalesReportQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	filter, err := q.filter()
	if err != nil {
		logger.Error("Invalid report date", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "dates must use the YYYY-MM-DD format"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if q.Bucket == "" {
		metrics.ReportRequestsTotal.WithLabelValues("sales_by_category").Inc()

		rows, err := h.reportService.SalesByCategory(ctx, filter)
		if err != nil {
			return h.salesError(c, err)
		}

		return c.JSON(http.StatusOK, fres.Response.StatusOK(rows))
	}

	metrics.ReportRequestsTotal.WithLabelValues("sales_by_period").Inc()

	rows, err := h.reportService.SalesByPeriod(ctx, filter, q.Bucket)
	if err != nil {
		return h.salesError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(rows))
}

func (h *ReportHandler) salesError(c echo.Context, err error) error {
	if err.Error() == "start date must not be after end date" ||
		err.Error() == "invalid bucket: must be day, week, month or year" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	logger.Error("Failed to build sales report", err)
	return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
}

func (h *ReportHandler) InventoryStatus(c echo.Context) error {
	metrics.ReportRequestsTotal.WithLabelValues("inventory_status").Inc()

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rows, err := h.reportService.InventoryStatus(ctx)
	if err != nil {
		logger.Error("Failed to build inventory status report", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(rows))
}

func (h *ReportHandler) InventoryAlerts(c echo.Context) error {
	metrics.ReportRequestsTotal.WithLabelValues("inventory_alerts").Inc()

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rows, err := h.reportService.InventoryAlerts(ctx)
	if err != nil {
		logger.Error("Failed to build inventory alert report", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(rows))
}
