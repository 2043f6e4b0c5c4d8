package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/payflow-labs/payflow/internal/domain/entity"
	coreport "github.com/payflow-labs/payflow/internal/domain/port/core"
	"github.com/payflow-labs/payflow/internal/domain/port/persistence"
)

// Recorder is the write side of the audit trail, consumed by every
// state-changing use case
type Recorder interface {
	Record(ctx context.Context, e Event)
}

// Event is a draft audit entry. The service sanitizes details and fills in
// ID and timestamp before persistence.
type Event struct {
	ActorID      uint64
	ActorType    string
	Action       string
	ResourceType string
	ResourceID   string
	Outcome      string
	Details      map[string]any
	Request      entity.RequestContext
}

// Service appends sanitized entries to the audit sink. Audit is best-effort
// durability on top of guaranteed financial correctness: a failed write goes
// to the fallback log channel and never fails the primary operation.
type Service struct {
	repo         persistence.AuditLogRepository
	fallback     coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewService creates the audit service. fallback receives entries that could
// not be persisted.
func NewService(repo persistence.AuditLogRepository, fallback coreport.Logger, timeProvider coreport.TimeProvider) *Service {
	return &Service{
		repo:         repo,
		fallback:     fallback,
		timeProvider: timeProvider,
	}
}

// Record sanitizes and appends one audit entry. It never returns an error.
func (s *Service) Record(ctx context.Context, e Event) {
	entry := &entity.AuditLogEntry{
		ID:            uuid.New().String(),
		ActorID:       e.ActorID,
		ActorType:     e.ActorType,
		Action:        e.Action,
		ResourceType:  e.ResourceType,
		ResourceID:    e.ResourceID,
		Outcome:       e.Outcome,
		Details:       SanitizeDetails(e.Details),
		IP:            e.Request.IP,
		UserAgent:     e.Request.UserAgent,
		CorrelationID: e.Request.CorrelationID,
		CreatedAt:     s.timeProvider.Now(),
	}

	if err := s.repo.Append(ctx, entry); err != nil {
		// Fallback channel: the entry is preserved in the structured log
		// stream so the action remains traceable
		s.fallback.Error("audit write failed, entry routed to fallback channel", map[string]any{
			"audit_fallback": true,
			"entry_id":       entry.ID,
			"actor_id":       entry.ActorID,
			"action":         entry.Action,
			"resource_type":  entry.ResourceType,
			"resource_id":    entry.ResourceID,
			"outcome":        entry.Outcome,
			"correlation_id": entry.CorrelationID,
			"error":          err.Error(),
		})
	}
}

// Query returns audit entries matching the filter for compliance and
// investigation tooling
func (s *Service) Query(ctx context.Context, filter persistence.AuditFilter) ([]*entity.AuditLogEntry, error) {
	return s.repo.Query(ctx, filter)
}
