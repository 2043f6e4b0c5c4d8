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

// CashoutRepository implements persistence.CashoutRepository using GORM
type CashoutRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewCashoutRepository creates a new CashoutRepository instance
func NewCashoutRepository(db *gorm.DB, logger coreport.Logger) *CashoutRepository {
	return &CashoutRepository{db: db, logger: logger}
}

func cashoutModelToEntity(m *model.Cashout) *entity.Cashout {
	return &entity.Cashout{
		ID:               m.ID,
		UserID:           m.UserID,
		AmountCents:      m.AmountCents,
		DestinationLabel: m.DestinationLabel,
		Status:           entity.CashoutStatus(m.Status),
		CreatedAt:        m.CreatedAt,
		Tier:             entity.TierHot,
	}
}

// Create persists a new cashout row
func (r *CashoutRepository) Create(ctx context.Context, cashout *entity.Cashout) error {
	cashoutModel := model.Cashout{
		ID:               cashout.ID,
		UserID:           cashout.UserID,
		AmountCents:      cashout.AmountCents,
		DestinationLabel: cashout.DestinationLabel,
		Status:           string(cashout.Status),
		CreatedAt:        cashout.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(&cashoutModel)
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return nil
}

// ListArchivable returns up to limit cashouts older than the cutoff
func (r *CashoutRepository) ListArchivable(ctx context.Context, olderThan time.Time, limit int) ([]*entity.Cashout, error) {
	var models []model.Cashout
	result := r.db.WithContext(ctx).
		Where("created_at < ?", olderThan).
		Order("created_at ASC").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	cashouts := make([]*entity.Cashout, len(models))
	for i := range models {
		cashouts[i] = cashoutModelToEntity(&models[i])
	}
	return cashouts, nil
}

// DeleteByIDs removes hot rows that were relocated to the warm tier
func (r *CashoutRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Cashout{})
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return nil
}
