package model

import (
	"time"
)

// Cashout represents the database model for hot-tier cashouts
type Cashout struct {
	ID               string    `gorm:"primaryKey;size:36"`
	UserID           uint64    `gorm:"not null;index"`
	AmountCents      int64     `gorm:"not null"`
	DestinationLabel string    `gorm:"size:100"`
	Status           string    `gorm:"not null;size:20"`
	CreatedAt        time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for Cashout
func (Cashout) TableName() string {
	return "cashouts"
}
