package rest

import (
	"context"
	"net/http"
	"shopsight/domain"
	"shopsight/pkg/logger"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
)

type (
	ActivityHandler struct {
		validate        *validator.Validate
		activityService ActivityService
		timeout         time.Duration
	}

	ActivityService interface {
		Record(ctx context.Context, event *domain.ActivityEvent) error
		ListByUser(ctx context.Context, userID uint, page, limit int) ([]domain.ActivityEvent, error)
		CountByProduct(ctx context.Context, productID uint64) (int64, error)
		Purge(ctx context.Context) (int64, error)
	}

	RecordActivityRequest struct {
		ProductID       *uint64        `json:"product_id"`
		Action          string         `json:"action" validate:"required,oneof=view stay purchase"`
		DurationSeconds *int           `json:"duration_seconds" validate:"omitempty,gte=0"`
		Context         map[string]any `json:"context"`
	}

	ActivityListQuery struct {
		UserID uint `query:"user_id"`
		Page   int  `query:"page"`
		Limit  int  `query:"limit"`
	}
)

func NewActivityHandler(activityService ActivityService) *ActivityHandler {
	return &ActivityHandler{
		validate:        validator.New(),
		activityService: activityService,
		timeout:         10 * time.Second,
	}
}

func (h *ActivityHandler) Record(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req RecordActivityRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&req); err != nil {
		logger.Error("Failed to validate activity request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	event := domain.ActivityEvent{
		UserID:          userID,
		ProductID:       req.ProductID,
		Action:          req.Action,
		DurationSeconds: req.DurationSeconds,
		IPAddress:       c.RealIP(),
		Context:         datatypes.JSONMap(req.Context),
		CreatedAt:       time.Now(),
	}

	if err := h.activityService.Record(ctx, &event); err != nil {
		if err.Error() == "invalid action" ||
			err.Error() == "duration is required for stay events" ||
			err.Error() == "duration cannot be negative" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("activity recorded"))
}

func (h *ActivityHandler) List(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q ActivityListQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	// Admins may list any user's history; everyone else only their own.
	targetUserID := userID
	if q.UserID != 0 && q.UserID != userID {
		if !isAdmin(c) {
			return c.JSON(http.StatusForbidden, ResponseError{Message: "admin access required to list other users"})
		}
		targetUserID = q.UserID
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	events, err := h.activityService.ListByUser(ctx, targetUserID, q.Page, q.Limit)
	if err != nil {
		logger.Error("Failed to list activity events", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(events))
}

func (h *ActivityHandler) CountByProduct(c echo.Context) error {
	productIdStr := c.Param("productId")

	productId, err := strconv.ParseUint(productIdStr, 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	count, err := h.activityService.CountByProduct(ctx, productId)
	if err != nil {
		if err.Error() == "invalid product id" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to count activity events", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"product_id":  productId,
		"event_count": count,
	})
}

// Purge is the admin-only retention cleanup.
func (h *ActivityHandler) Purge(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	deleted, err := h.activityService.Purge(ctx)
	if err != nil {
		logger.Error("Failed to purge activity events", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "activity events purged",
		"deleted": deleted,
	})
}
