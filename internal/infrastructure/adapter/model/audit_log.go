package model

import (
	"time"
)

// AuditLog represents the append-only audit trail. Details holds the
// sanitized event payload as JSON.
type AuditLog struct {
	ID            string    `gorm:"primaryKey;size:36"`
	ActorID       uint64    `gorm:"index"`
	ActorType     string    `gorm:"not null;size:20"`
	Action        string    `gorm:"not null;size:50;index"`
	ResourceType  string    `gorm:"not null;size:50;index:idx_audit_resource,priority:1"`
	ResourceID    string    `gorm:"size:64;index:idx_audit_resource,priority:2"`
	Outcome       string    `gorm:"not null;size:20"`
	Details       string    `gorm:"type:text"`
	IP            string    `gorm:"size:45"`
	UserAgent     string    `gorm:"size:255"`
	CorrelationID string    `gorm:"size:64;index"`
	CreatedAt     time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}
