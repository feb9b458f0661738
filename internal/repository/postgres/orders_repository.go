package postgres

import (
	"context"
	"errors"
	"fmt"
	"shopsight/domain"

	"gorm.io/gorm"
)

type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

// CreateWithItems writes the order header and its line items in one
// transaction.
func (r *OrdersRepository) CreateWithItems(ctx context.Context, order *domain.Orders, items []domain.OrderItem) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
		}

		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		order.Items = items
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

func (r *OrdersRepository) FindByID(ctx context.Context, id uint64) (domain.Orders, error) {
	if err := ctx.Err(); err != nil {
		return domain.Orders{}, fmt.Errorf("context error: %w", err)
	}

	var order domain.Orders
	err := r.DB.WithContext(ctx).Preload("Items").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Orders{}, errors.New("order not found")
		}
		return domain.Orders{}, fmt.Errorf("failed to find order: %w", err)
	}

	return order, nil
}

func (r *OrdersRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Orders, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var orders []domain.Orders
	err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}

	return orders, nil
}

func (r *OrdersRepository) FindAll(ctx context.Context) ([]domain.Orders, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var orders []domain.Orders
	err := r.DB.WithContext(ctx).Preload("Items").Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}

	return orders, nil
}

func (r *OrdersRepository) UpdateStatus(ctx context.Context, id uint64, status string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).
		Model(&domain.Orders{}).
		Where("id = ?", id).
		Update("order_status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("order not found")
	}

	return nil
}

// Delete removes the order and its line items in one transaction.
func (r *OrdersRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&domain.OrderItem{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&domain.Orders{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errors.New("order not found")
		}

		return nil
	})
	if err != nil {
		if err.Error() == "order not found" {
			return err
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}

	return nil
}
