package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/payflow-labs/payflow/internal/domain/entity"
	errs "github.com/payflow-labs/payflow/internal/domain/error"
	coreport "github.com/payflow-labs/payflow/internal/domain/port/core"
	"github.com/payflow-labs/payflow/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// PaymentRequestRepository implements persistence.PaymentRequestRepository
// using GORM
type PaymentRequestRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewPaymentRequestRepository creates a new PaymentRequestRepository instance
func NewPaymentRequestRepository(db *gorm.DB, logger coreport.Logger) *PaymentRequestRepository {
	return &PaymentRequestRepository{db: db, logger: logger}
}

// ListArchivable returns up to limit closed payment requests older than the
// cutoff. Open requests always stay hot.
func (r *PaymentRequestRepository) ListArchivable(ctx context.Context, olderThan time.Time, limit int) ([]*entity.PaymentRequest, error) {
	var models []model.PaymentRequest
	result := r.db.WithContext(ctx).
		Where("created_at < ? AND status <> ?", olderThan, "open").
		Order("created_at ASC").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	requests := make([]*entity.PaymentRequest, len(models))
	for i := range models {
		requests[i] = &entity.PaymentRequest{
			ID:          models[i].ID,
			RequesterID: models[i].RequesterID,
			TargetID:    models[i].TargetID,
			AmountCents: models[i].AmountCents,
			Note:        models[i].Note,
			Status:      entity.PaymentRequestStatus(models[i].Status),
			FulfilledBy: models[i].FulfilledBy,
			CreatedAt:   models[i].CreatedAt,
			Tier:        entity.TierHot,
		}
	}
	return requests, nil
}

// DeleteByIDs removes hot rows that were relocated to the warm tier
func (r *PaymentRequestRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.PaymentRequest{})
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return nil
}
