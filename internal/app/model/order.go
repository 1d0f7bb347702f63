package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipping  OrderStatus = "shipping"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Order rows are written by the storefront; the back office reads them for
// reporting and can advance their status.
type Order struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Reference     string         `gorm:"uniqueIndex;not null" json:"reference"`
	CustomerEmail string         `json:"customer_email"`
	TotalAmount   float64        `gorm:"not null" json:"total_amount"`
	Status        OrderStatus    `gorm:"type:varchar(20);default:'pending'" json:"status"`
	PaymentStatus PaymentStatus  `gorm:"type:varchar(20);default:'pending'" json:"payment_status"`
	VoucherCode   string         `json:"voucher_code,omitempty"`
	PlacedAt      time.Time      `gorm:"index" json:"placed_at"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	OrderID   uint           `gorm:"not null;index" json:"order_id"`
	VariantID uint           `gorm:"not null;index" json:"variant_id"`
	SKU       string         `json:"sku"`
	Name      string         `json:"name"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	UnitPrice float64        `gorm:"not null" json:"unit_price"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Variant Variant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
