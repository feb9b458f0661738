package rest

import (
	"context"
	"net/http"
	"shopsight/domain"
	"shopsight/pkg/logger"
	"shopsight/pkg/metrics"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendationHandler struct {
		validate         *validator.Validate
		recommendService RecommendService
		timeout          time.Duration
	}

	RecommendService interface {
		Generate(ctx context.Context, userID uint) ([]domain.Recommendation, error)
		GetForUser(ctx context.Context, userID uint, limit int) ([]domain.Recommendation, error)
		Similar(ctx context.Context, productID uint64) ([]domain.Product, error)
		Popular(ctx context.Context, limit int) ([]domain.Product, error)
	}

	RecommendationQuery struct {
		Limit int `query:"limit"`
	}
)

func NewRecommendationHandler(recommendService RecommendService) *RecommendationHandler {
	return &RecommendationHandler{
		validate:         validator.New(),
		recommendService: recommendService,
		timeout:          10 * time.Second,
	}
}

func (h *RecommendationHandler) Get(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q RecommendationQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.recommendService.GetForUser(ctx, userID, q.Limit)
	if err != nil {
		logger.Error("Failed to get recommendations", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

func (h *RecommendationHandler) Generate(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	start := time.Now()
	recs, err := h.recommendService.Generate(ctx, userID)
	metrics.RecommendGenerateLatency.Observe(time.Since(start).Seconds())
	metrics.RecommendGenerateRequests.Inc()

	if err != nil {
		logger.Error("Failed to generate recommendations", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

func (h *RecommendationHandler) Similar(c echo.Context) error {
	productIdStr := c.Param("productId")

	productId, err := strconv.ParseUint(productIdStr, 10, 64)
	if err != nil {
		logger.Error("Invalid product id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.recommendService.Similar(ctx, productId)
	if err != nil {
		if err.Error() == "product not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "invalid product id" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to find similar products", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}

func (h *RecommendationHandler) Popular(c echo.Context) error {
	var q RecommendationQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.recommendService.Popular(ctx, q.Limit)
	if err != nil {
		logger.Error("Failed to find popular products", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}
