package model

import (
	"time"
)

// Friendship represents an edge in the friend graph. Edges are stored once
// per direction so recipient lookups stay a single indexed query.
type Friendship struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    uint64    `gorm:"not null;index:idx_friendships_pair,unique,priority:1"`
	FriendID  uint64    `gorm:"not null;index:idx_friendships_pair,unique,priority:2"`
	Status    string    `gorm:"not null;size:20"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for Friendship
func (Friendship) TableName() string {
	return "friendships"
}
