package model

import (
	"time"
)

// PaymentRequest represents the database model for hot-tier payment requests
type PaymentRequest struct {
	ID          string    `gorm:"primaryKey;size:36"`
	RequesterID uint64    `gorm:"not null;index"`
	TargetID    uint64    `gorm:"not null;index"`
	AmountCents int64     `gorm:"not null"`
	Note        string    `gorm:"size:280"`
	Status      string    `gorm:"not null;size:20;index"`
	FulfilledBy string    `gorm:"size:36;index"`
	CreatedAt   time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for PaymentRequest
func (PaymentRequest) TableName() string {
	return "payment_requests"
}
