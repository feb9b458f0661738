package rest

import (
	"context"
	"net/http"
	"shopsight/business/orders"
	"shopsight/domain"
	"shopsight/pkg/logger"
	"strconv"
	"strings"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	OrdersHandler struct {
		validate      *validator.Validate
		ordersService OrdersService
		timeout       time.Duration
	}

	OrdersService interface {
		CreateOrder(ctx context.Context, userID uint, ipAddress string, items []orders.OrderItemInput) (domain.Orders, error)
		GetOrder(ctx context.Context, orderID uint64, userID uint, isAdmin bool) (domain.Orders, error)
		GetOrdersByUser(ctx context.Context, userID uint) ([]domain.Orders, error)
		GetAllOrders(ctx context.Context) ([]domain.Orders, error)
		UpdateOrderStatus(ctx context.Context, orderID uint64, status string) error
		DeleteOrder(ctx context.Context, orderID uint64) error
	}

	OrderItemInput struct {
		ProductID uint64 `json:"product_id" validate:"required"`
		Quantity  int    `json:"quantity" validate:"required,gt=0"`
	}

	CreateOrderRequest struct {
		Items []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	}

	UpdateOrderStatusRequest struct {
		Status string `json:"status" validate:"required,oneof=PENDING COMPLETED CANCELLED"`
	}
)

func NewOrdersHandler(ordersService OrdersService) *OrdersHandler {
	return &OrdersHandler{
		validate:      validator.New(),
		ordersService: ordersService,
		timeout:       10 * time.Second,
	}
}

func isAdmin(c echo.Context) bool {
	role, ok := c.Get("role").(string)
	return ok && strings.ToUpper(role) == "ADMIN"
}

func (h *OrdersHandler) CreateOrder(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&req); err != nil {
		logger.Error("Failed to validate order request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	items := make([]orders.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, orders.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.CreateOrder(ctx, userID, c.RealIP(), items)
	if err != nil {
		logger.Error("Failed to create order", err)
		if err.Error() == "product not found" ||
			err.Error() == "order must contain at least one item" ||
			err.Error() == "quantity must be greater than 0" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(order))
}

func (h *OrdersHandler) GetOrders(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if isAdmin(c) {
		allOrders, err := h.ordersService.GetAllOrders(ctx)
		if err != nil {
			logger.Error("Failed to get all orders", err)
			return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, fres.Response.StatusOK(allOrders))
	}

	userOrders, err := h.ordersService.GetOrdersByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to get orders", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(userOrders))
}

func (h *OrdersHandler) GetOrderByID(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	orderIdStr := c.Param("id")
	orderId, err := strconv.ParseUint(orderIdStr, 10, 64)
	if err != nil {
		logger.Error("Invalid order id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.GetOrder(ctx, orderId, userID, isAdmin(c))
	if err != nil {
		if err.Error() == "order not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}

func (h *OrdersHandler) UpdateOrderStatus(c echo.Context) error {
	orderIdStr := c.Param("id")
	orderId, err := strconv.ParseUint(orderIdStr, 10, 64)
	if err != nil {
		logger.Error("Invalid order id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&req); err != nil {
		logger.Error("Failed to validate order status request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.ordersService.UpdateOrderStatus(ctx, orderId, req.Status); err != nil {
		logger.Error("Failed to update order status", err)
		if err.Error() == "order not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "invalid order status" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully update order status",
		"order_id": orderId,
		"status":   req.Status,
	})
}

func (h *OrdersHandler) DeleteOrder(c echo.Context) error {
	orderIdStr := c.Param("id")
	orderId, err := strconv.ParseUint(orderIdStr, 10, 64)
	if err != nil {
		logger.Error("Invalid order id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.ordersService.DeleteOrder(ctx, orderId); err != nil {
		logger.Error("Failed to delete order", err)
		if err.Error() == "order not found" || err.Error() == "invalid order id" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "order successfully deleted",
		"order_id": orderId,
	})
}
