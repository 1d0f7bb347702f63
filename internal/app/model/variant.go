package model

import (
	"time"

	"gorm.io/gorm"
)

// Variant is a sellable unit of a product. A variant with IsBundle set is a
// composite: its sellable quantity derives from the stock of its components
// (see BundleItem and DerivedAvailableQty) and its own Stock column is ignored.
type Variant struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	ProductID  uint           `gorm:"index;not null" json:"product_id"`
	SKU        string         `gorm:"not null;index" json:"sku"`
	Name       string         `json:"name"`
	Price      float64        `gorm:"not null" json:"price"`
	SalePrice  *float64       `json:"sale_price,omitempty"`
	Stock      int            `gorm:"default:0" json:"stock"`
	TrackStock bool           `json:"track_stock"`
	IsBundle   bool           `gorm:"default:false" json:"is_bundle"`
	SortOrder  int            `gorm:"default:0" json:"sort_order"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Product     Product      `gorm:"foreignKey:ProductID" json:"-"`
	BundleItems []BundleItem `gorm:"foreignKey:BundleID;constraint:OnDelete:CASCADE" json:"bundle_items,omitempty"`

	// Computed on read, never stored.
	AvailableQty    *int `gorm:"-" json:"available_qty,omitempty"`
	DiscountPercent *int `gorm:"-" json:"discount_percent,omitempty"`
}

func (Variant) TableName() string {
	return "variants"
}

// BundleItem is one line of a bundle's bill of materials. The component is
// referenced by variant ID when the component has been persisted, and by SKU
// otherwise (bundles can be composed before their components receive IDs).
type BundleItem struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	BundleID           uint           `gorm:"index;not null" json:"bundle_id"`
	ComponentVariantID *uint          `gorm:"index" json:"component_variant_id,omitempty"`
	ComponentSKU       string         `json:"component_sku,omitempty"`
	Quantity           int            `gorm:"not null;default:1" json:"quantity"`
	SortOrder          int            `gorm:"default:0" json:"sort_order"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	Bundle Variant `gorm:"foreignKey:BundleID" json:"-"`
}

func (BundleItem) TableName() string {
	return "bundle_items"
}
