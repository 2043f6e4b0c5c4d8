package model

import (
	"time"
)

// PaymentMethod represents the database model for linked funding sources
type PaymentMethod struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	OwnerID   uint64    `gorm:"not null;index"`
	Kind      string    `gorm:"not null;size:20"`
	IsDefault bool      `gorm:"not null;default:false"`
	Verified  bool      `gorm:"not null;default:false"`
	Last4     string    `gorm:"not null;size:4"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for PaymentMethod
func (PaymentMethod) TableName() string {
	return "payment_methods"
}
