package model

import (
	"time"

	"gorm.io/gorm"
)

type ProductCategory string

const (
	CategoryApparel     ProductCategory = "apparel"
	CategoryAccessories ProductCategory = "accessories"
	CategoryHome        ProductCategory = "home"
	CategoryFood        ProductCategory = "food"
	CategoryOther       ProductCategory = "other"
)

type Product struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Category    ProductCategory `gorm:"type:varchar(50)" json:"category"`
	ImageURL    string          `json:"image_url"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Variants []Variant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
}

func (Product) TableName() string {
	return "products"
}
