package model

import (
	"time"

	"gorm.io/gorm"
)

type VoucherType string

const (
	VoucherTypePercent VoucherType = "percent" // value is a percentage of the order total
	VoucherTypeFixed   VoucherType = "fixed"   // value is a flat amount
)

type Voucher struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	Code       string         `gorm:"uniqueIndex;not null" json:"code"`
	Type       VoucherType    `gorm:"type:varchar(20);not null" json:"type"`
	Value      float64        `gorm:"not null" json:"value"`
	MinSpend   float64        `gorm:"default:0" json:"min_spend"`
	StartsAt   *time.Time     `json:"starts_at,omitempty"`
	ExpiresAt  *time.Time     `json:"expires_at,omitempty"`
	UsageLimit int            `gorm:"default:0" json:"usage_limit"` // 0 = unlimited
	UsedCount  int            `gorm:"default:0" json:"used_count"`
	IsActive   bool           `json:"is_active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Voucher) TableName() string {
	return "vouchers"
}
