package domain

import "time"

const (
	OrderStatusPending   = "PENDING"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

type Orders struct {
	ID          uint64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint        `gorm:"column:user_id;index;not null" json:"user_id"`
	OrderStatus string      `gorm:"column:order_status;type:text;default:PENDING" json:"order_status"`
	Total       float64     `gorm:"column:total;type:numeric" json:"total"`
	CreatedAt   time.Time   `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"column:updated_at" json:"updated_at"`
	Items       []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (Orders) TableName() string {
	return "orders"
}

// OrderItem captures quantity and the product price at order time; reports
// aggregate over these rows, never over live product prices.
type OrderItem struct {
	ID        uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint64  `gorm:"column:order_id;index;not null" json:"order_id"`
	ProductID uint64  `gorm:"column:product_id;not null" json:"product_id"`
	Quantity  int     `gorm:"column:quantity;not null" json:"quantity"`
	Price     float64 `gorm:"column:price;type:numeric;not null" json:"price"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
