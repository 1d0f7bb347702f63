package model

import (
	"time"

	"gorm.io/gorm"
)

// Reward is a loyalty catalog entry customers redeem points for.
// Stock of -1 means the reward is not stock-limited.
type Reward struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	PointsCost  int            `gorm:"not null" json:"points_cost"`
	Stock       int            `gorm:"default:-1" json:"stock"`
	ImageURL    string         `json:"image_url"`
	IsActive    bool           `json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Reward) TableName() string {
	return "rewards"
}
