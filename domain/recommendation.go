package domain

import "time"

// CREATE TABLE public.recommendations (
//     id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     user_id    BIGINT NOT NULL,
//     product_id BIGINT NOT NULL,
//     score      NUMERIC,
//     created_at TIMESTAMPTZ DEFAULT NOW()
// );

// Recommendation is one persisted row of a user's generated set. The whole
// set is replaced per generation run, never updated in place.
type Recommendation struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"column:user_id;index;not null" json:"user_id"`
	ProductID uint64    `gorm:"column:product_id;not null" json:"product_id"`
	Score     float64   `gorm:"column:score;type:numeric" json:"score"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}
