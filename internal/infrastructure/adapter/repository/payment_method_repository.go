package repository

import (
	"context"
	"fmt"

	"github.com/payflow-labs/payflow/internal/domain/entity"
	errs "github.com/payflow-labs/payflow/internal/domain/error"
	coreport "github.com/payflow-labs/payflow/internal/domain/port/core"
	"github.com/payflow-labs/payflow/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// PaymentMethodRepository implements persistence.PaymentMethodRepository using GORM
type PaymentMethodRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewPaymentMethodRepository creates a new PaymentMethodRepository instance
func NewPaymentMethodRepository(db *gorm.DB, logger coreport.Logger) *PaymentMethodRepository {
	return &PaymentMethodRepository{db: db, logger: logger}
}

// ListVerifiedByOwner returns the owner's verified payment methods, defaults
// first so the funding waterfall can take the first match per kind
func (r *PaymentMethodRepository) ListVerifiedByOwner(ctx context.Context, ownerID uint64) ([]*entity.PaymentMethod, error) {
	var models []model.PaymentMethod
	result := r.db.WithContext(ctx).
		Where("owner_id = ? AND verified = ?", ownerID, true).
		Order("is_default DESC, created_at ASC").
		Find(&models)
	if result.Error != nil {
		r.logger.Error("Database error when listing payment methods", map[string]any{
			"owner_id": ownerID,
			"error":    result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	methods := make([]*entity.PaymentMethod, len(models))
	for i := range models {
		methods[i] = &entity.PaymentMethod{
			ID:        models[i].ID,
			OwnerID:   models[i].OwnerID,
			Kind:      entity.PaymentMethodKind(models[i].Kind),
			IsDefault: models[i].IsDefault,
			Verified:  models[i].Verified,
			Last4:     models[i].Last4,
			CreatedAt: models[i].CreatedAt,
		}
	}
	return methods, nil
}
