package persistence

import (
	"context"
	"time"

	"github.com/payflow-labs/payflow/internal/domain/entity"
)

// AuditFilter narrows an audit query. Zero values mean "no filter".
type AuditFilter struct {
	ActorID      uint64
	Action       string
	ResourceType string
	ResourceID   string
	StartDate    *time.Time
	EndDate      *time.Time
	Limit        int
}

// AuditLogRepository is the append-only audit sink
type AuditLogRepository interface {
	// Append persists one audit entry. Entries are never updated or deleted
	// inside the retention window.
	Append(ctx context.Context, entry *entity.AuditLogEntry) error

	// Query returns entries matching the filter, newest first
	Query(ctx context.Context, filter AuditFilter) ([]*entity.AuditLogEntry, error)
}
