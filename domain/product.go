package domain

import (
	"time"
)

// CREATE TABLE public.products (
//     id               BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     category_id      BIGINT,
//     product_name     TEXT,
//     product_category TEXT,
//     price            NUMERIC,
//     stock            INTEGER,
//     created_at       TIMESTAMPTZ DEFAULT NOW(),
//     updated_at       TIMESTAMPTZ
// );

type Product struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID      uint64    `gorm:"column:category_id;default:0" json:"category_id"`
	ProductName     string    `gorm:"column:product_name;type:text" json:"product_name"`
	ProductCategory string    `gorm:"column:product_category;type:text" json:"product_category"`
	Price           float64   `gorm:"column:price;type:numeric" json:"price"`
	Stock           int       `gorm:"column:stock" json:"stock"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}
