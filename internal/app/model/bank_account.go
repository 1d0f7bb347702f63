package model

import (
	"time"

	"gorm.io/gorm"
)

// BankAccount is a settlement account shown to customers at checkout.
type BankAccount struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	BankName      string         `gorm:"not null" json:"bank_name"`
	AccountNumber string         `gorm:"not null" json:"account_number"`
	HolderName    string         `gorm:"not null" json:"holder_name"`
	IsActive      bool           `json:"is_active"`
	SortOrder     int            `gorm:"default:0" json:"sort_order"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (BankAccount) TableName() string {
	return "bank_accounts"
}
