package model

import (
	"time"
)

// FeedItem represents a denormalized feed pointer
type FeedItem struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	UserID     uint64    `gorm:"not null;index:idx_feed_user_created,priority:1"`
	TransferID string    `gorm:"not null;size:36"`
	CreatedAt  time.Time `gorm:"not null;index:idx_feed_user_created,priority:2,sort:desc"`
}

// TableName specifies the table name for FeedItem
func (FeedItem) TableName() string {
	return "feed_items"
}
