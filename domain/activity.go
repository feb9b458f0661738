package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ActionView     = "view"
	ActionStay     = "stay"
	ActionPurchase = "purchase"
)

// CREATE TABLE public.activity_events (
//     id               BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     user_id          BIGINT NOT NULL,
//     product_id       BIGINT,
//     action           TEXT NOT NULL,
//     duration_seconds INTEGER,
//     ip_address       TEXT,
//     context          JSONB,
//     created_at       TIMESTAMPTZ DEFAULT NOW()
// );

// ActivityEvent is one append-only row of user behavior. DurationSeconds is
// only meaningful for stay events; ProductID is nullable for events not tied
// to a product.
type ActivityEvent struct {
	ID              uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint              `gorm:"column:user_id;index;not null" json:"user_id"`
	ProductID       *uint64           `gorm:"column:product_id;index" json:"product_id,omitempty"`
	Action          string            `gorm:"column:action;type:text;not null" json:"action"`
	DurationSeconds *int              `gorm:"column:duration_seconds" json:"duration_seconds,omitempty"`
	IPAddress       string            `gorm:"column:ip_address;type:text" json:"ip_address,omitempty"`
	Context         datatypes.JSONMap `gorm:"column:context" json:"context,omitempty"`
	CreatedAt       time.Time         `gorm:"column:created_at" json:"created_at"`
}

func (ActivityEvent) TableName() string {
	return "activity_events"
}

// CategoryActivity is one scan row of the activity history joined with the
// product's category, the input the preference scorer works from.
type CategoryActivity struct {
	Action          string `gorm:"column:action"`
	DurationSeconds *int   `gorm:"column:duration_seconds"`
	ProductCategory string `gorm:"column:product_category"`
}

// ProductActivityCount is one row of the grouped event-count ranking.
type ProductActivityCount struct {
	ProductID  uint64 `gorm:"column:product_id" json:"product_id"`
	EventCount int64  `gorm:"column:event_count" json:"event_count"`
}
