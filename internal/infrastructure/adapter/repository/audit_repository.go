package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/payflow-labs/payflow/internal/domain/entity"
	errs "github.com/payflow-labs/payflow/internal/domain/error"
	coreport "github.com/payflow-labs/payflow/internal/domain/port/core"
	"github.com/payflow-labs/payflow/internal/domain/port/persistence"
	"github.com/payflow-labs/payflow/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

const defaultAuditQueryLimit = 100

// AuditLogRepository implements the append-only audit sink using GORM
type AuditLogRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAuditLogRepository creates a new AuditLogRepository instance
func NewAuditLogRepository(db *gorm.DB, logger coreport.Logger) *AuditLogRepository {
	return &AuditLogRepository{db: db, logger: logger}
}

// Append persists one audit entry
func (r *AuditLogRepository) Append(ctx context.Context, entry *entity.AuditLogEntry) error {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return fmt.Errorf("%w: failed to encode audit details: %s", errs.ErrAuditFailure, err.Error())
	}

	auditModel := model.AuditLog{
		ID:            entry.ID,
		ActorID:       entry.ActorID,
		ActorType:     entry.ActorType,
		Action:        entry.Action,
		ResourceType:  entry.ResourceType,
		ResourceID:    entry.ResourceID,
		Outcome:       entry.Outcome,
		Details:       string(details),
		IP:            entry.IP,
		UserAgent:     entry.UserAgent,
		CorrelationID: entry.CorrelationID,
		CreatedAt:     entry.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(&auditModel)
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrAuditFailure, result.Error.Error())
	}
	return nil
}

// Query returns entries matching the filter, newest first
func (r *AuditLogRepository) Query(ctx context.Context, filter persistence.AuditFilter) ([]*entity.AuditLogEntry, error) {
	query := r.db.WithContext(ctx).Model(&model.AuditLog{})

	if filter.ActorID != 0 {
		query = query.Where("actor_id = ?", filter.ActorID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.ResourceType != "" {
		query = query.Where("resource_type = ?", filter.ResourceType)
	}
	if filter.ResourceID != "" {
		query = query.Where("resource_id = ?", filter.ResourceID)
	}
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultAuditQueryLimit
	}

	var models []model.AuditLog
	result := query.Order("created_at DESC").Limit(limit).Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	entries := make([]*entity.AuditLogEntry, len(models))
	for i := range models {
		entry := &entity.AuditLogEntry{
			ID:            models[i].ID,
			ActorID:       models[i].ActorID,
			ActorType:     models[i].ActorType,
			Action:        models[i].Action,
			ResourceType:  models[i].ResourceType,
			ResourceID:    models[i].ResourceID,
			Outcome:       models[i].Outcome,
			IP:            models[i].IP,
			UserAgent:     models[i].UserAgent,
			CorrelationID: models[i].CorrelationID,
			CreatedAt:     models[i].CreatedAt,
		}
		if models[i].Details != "" {
			if err := json.Unmarshal([]byte(models[i].Details), &entry.Details); err != nil {
				r.logger.Warn("Corrupt audit details payload", map[string]any{
					"audit_id": models[i].ID,
					"error":    err.Error(),
				})
			}
		}
		entries[i] = entry
	}
	return entries, nil
}
