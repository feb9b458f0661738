package orders

import (
	"context"
	"errors"
	"fmt"
	"shopsight/domain"
	"shopsight/pkg/logger"
	"time"
)

type OrdersRepository interface {
	CreateWithItems(ctx context.Context, order *domain.Orders, items []domain.OrderItem) error
	FindByID(ctx context.Context, id uint64) (domain.Orders, error)
	FindByUser(ctx context.Context, userID uint) ([]domain.Orders, error)
	FindAll(ctx context.Context) ([]domain.Orders, error)
	UpdateStatus(ctx context.Context, id uint64, status string) error
	Delete(ctx context.Context, id uint64) error
}

type ProductRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
}

// ActivityRecorder feeds the recommendation pipeline with purchase signals.
type ActivityRecorder interface {
	Record(ctx context.Context, event *domain.ActivityEvent) error
}

// OrderItemInput is one requested line item.
type OrderItemInput struct {
	ProductID uint64
	Quantity  int
}

type OrdersService struct {
	orderRepo    OrdersRepository
	productsRepo ProductRepository
	activity     ActivityRecorder
}

func NewOrdersService(orderRepo OrdersRepository, productsRepo ProductRepository, activity ActivityRecorder) *OrdersService {
	return &OrdersService{
		orderRepo:    orderRepo,
		productsRepo: productsRepo,
		activity:     activity,
	}
}

var validStatuses = map[string]bool{
	domain.OrderStatusPending:   true,
	domain.OrderStatusCompleted: true,
	domain.OrderStatusCancelled: true,
}

// CreateOrder captures the product price at order time, persists order plus
// line items, and records one purchase activity event per item.
func (s *OrdersService) CreateOrder(ctx context.Context, userID uint, ipAddress string, items []OrderItemInput) (domain.Orders, error) {
	if err := ctx.Err(); err != nil {
		return domain.Orders{}, fmt.Errorf("context error: %w", err)
	}

	if len(items) == 0 {
		return domain.Orders{}, errors.New("order must contain at least one item")
	}

	orderItems := make([]domain.OrderItem, 0, len(items))
	total := 0.0

	for _, item := range items {
		if item.Quantity <= 0 {
			return domain.Orders{}, errors.New("quantity must be greater than 0")
		}

		product, err := s.productsRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			return domain.Orders{}, err
		}

		orderItems = append(orderItems, domain.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
		total += product.Price * float64(item.Quantity)
	}

	order := domain.Orders{
		UserID:      userID,
		OrderStatus: domain.OrderStatusPending,
		Total:       total,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.orderRepo.CreateWithItems(ctx, &order, orderItems); err != nil {
		logger.Error("Failed to create order", err)
		return domain.Orders{}, err
	}

	// Purchase signals are best effort; a failed event never rolls back the
	// order.
	for _, item := range orderItems {
		pid := item.ProductID
		event := domain.ActivityEvent{
			UserID:    userID,
			ProductID: &pid,
			Action:    domain.ActionPurchase,
			IPAddress: ipAddress,
		}
		if err := s.activity.Record(ctx, &event); err != nil {
			logger.Warn("Failed to record purchase event", "product_id", pid, "error", err)
		}
	}

	return order, nil
}

func (s *OrdersService) GetOrder(ctx context.Context, orderID uint64, userID uint, isAdmin bool) (domain.Orders, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return domain.Orders{}, err
	}

	if !isAdmin && order.UserID != userID {
		return domain.Orders{}, errors.New("order not found")
	}

	return order, nil
}

func (s *OrdersService) GetOrdersByUser(ctx context.Context, userID uint) ([]domain.Orders, error) {
	return s.orderRepo.FindByUser(ctx, userID)
}

func (s *OrdersService) GetAllOrders(ctx context.Context) ([]domain.Orders, error) {
	return s.orderRepo.FindAll(ctx)
}

func (s *OrdersService) UpdateOrderStatus(ctx context.Context, orderID uint64, status string) error {
	if !validStatuses[status] {
		return errors.New("invalid order status")
	}

	return s.orderRepo.UpdateStatus(ctx, orderID, status)
}

func (s *OrdersService) DeleteOrder(ctx context.Context, orderID uint64) error {
	if orderID == 0 {
		return errors.New("invalid order id")
	}

	return s.orderRepo.Delete(ctx, orderID)
}
