package model

import (
	"time"
)

// Transfer represents the database model for hot-tier transfers. The
// composite unique index on sender and idempotency key is the durable
// duplicate-suppression layer.
type Transfer struct {
	ID                 string    `gorm:"primaryKey;size:36"`
	SenderID           uint64    `gorm:"not null;index:idx_transfers_sender_key,unique,priority:1;index"`
	ReceiverID         uint64    `gorm:"not null;index"`
	AmountCents        int64     `gorm:"not null"`
	Note               string    `gorm:"size:280"`
	Visibility         string    `gorm:"not null;size:20"`
	Status             string    `gorm:"not null;size:20"`
	FundingSourceLabel string    `gorm:"size:100"`
	IdempotencyKey     string    `gorm:"not null;size:255;index:idx_transfers_sender_key,unique,priority:2"`
	CreatedAt          time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for Transfer
func (Transfer) TableName() string {
	return "transfers"
}
