package model

import (
	"time"
)

// Wallet represents the database model for wallets
type Wallet struct {
	UserID        uint64    `gorm:"primaryKey"`
	Balance       int64     `gorm:"not null"` // Balance in cents
	PendingCents  int64     `gorm:"not null;default:0"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
	TransferCount uint64    `gorm:"default:0"`
}

// TableName specifies the table name for Wallet
func (Wallet) TableName() string {
	return "wallets"
}
