package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type AlertType string

const (
	AlertTypeLowStock   AlertType = "low_stock"
	AlertTypeOutOfStock AlertType = "out_of_stock"
)

// StockAlert is a persisted low-stock event, also pushed live to connected
// staff through the websocket hub.
type StockAlert struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Type      AlertType `gorm:"type:varchar(30);not null;index" json:"type"`
	VariantID uint      `gorm:"not null;index" json:"variant_id"`
	SKU       string    `gorm:"not null" json:"sku"`
	Stock     int       `gorm:"not null" json:"stock"`
	IsRead    bool      `gorm:"default:false;index" json:"is_read"`

	Variant *Variant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
}

func (StockAlert) TableName() string {
	return "stock_alerts"
}

// AlertSettings holds per-user alert preferences.
type AlertSettings struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID uint  `gorm:"uniqueIndex;not null" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	LowStockThreshold int `gorm:"default:5" json:"low_stock_threshold"`

	// Product categories the user wants alerts for; empty means all.
	WatchedCategories pq.StringArray `gorm:"type:text[];default:'{}';not null" json:"watched_categories"`
}

func (AlertSettings) TableName() string {
	return "alert_settings"
}
