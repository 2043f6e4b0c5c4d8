package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/payflow-labs/payflow/internal/domain/entity"
	errs "github.com/payflow-labs/payflow/internal/domain/error"
	coreport "github.com/payflow-labs/payflow/internal/domain/port/core"
	"github.com/payflow-labs/payflow/internal/domain/port/persistence"
	"github.com/payflow-labs/payflow/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// TransferRepository implements persistence.TransferRepository using GORM
type TransferRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransferRepository creates a new TransferRepository instance
func NewTransferRepository(db *gorm.DB, logger coreport.Logger) *TransferRepository {
	return &TransferRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func transferModelToEntity(m *model.Transfer) *entity.Transfer {
	return &entity.Transfer{
		ID:                 m.ID,
		SenderID:           m.SenderID,
		ReceiverID:         m.ReceiverID,
		AmountCents:        m.AmountCents,
		Note:               m.Note,
		Visibility:         entity.Visibility(m.Visibility),
		Status:             entity.TransferStatus(m.Status),
		FundingSourceLabel: m.FundingSourceLabel,
		IdempotencyKey:     m.IdempotencyKey,
		CreatedAt:          m.CreatedAt,
		Tier:               entity.TierHot,
	}
}

func transferEntityToModel(t *entity.Transfer) *model.Transfer {
	return &model.Transfer{
		ID:                 t.ID,
		SenderID:           t.SenderID,
		ReceiverID:         t.ReceiverID,
		AmountCents:        t.AmountCents,
		Note:               t.Note,
		Visibility:         string(t.Visibility),
		Status:             string(t.Status),
		FundingSourceLabel: t.FundingSourceLabel,
		IdempotencyKey:     t.IdempotencyKey,
		CreatedAt:          t.CreatedAt,
	}
}

// Create persists a new transfer row. Duplicate (sender, idempotency key)
// pairs surface as ErrDuplicateTransfer via the unique index.
func (r *TransferRepository) Create(ctx context.Context, transfer *entity.Transfer) error {
	result := r.db.WithContext(ctx).Create(transferEntityToModel(transfer))
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			r.logger.Warn("Duplicate transfer for idempotency key", map[string]any{
				"sender_id": transfer.SenderID,
			})
			return errs.ErrDuplicateTransfer
		}
		r.logger.Error("Database error when creating transfer", map[string]any{
			"transfer_id": transfer.ID,
			"error":       result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return nil
}

// GetByID retrieves a transfer by its ID
func (r *TransferRepository) GetByID(ctx context.Context, id string) (*entity.Transfer, error) {
	var transferModel model.Transfer
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transferModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTransferNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return transferModelToEntity(&transferModel), nil
}

// GetBySenderAndKey retrieves the transfer for a sender and idempotency key
func (r *TransferRepository) GetBySenderAndKey(ctx context.Context, senderID uint64, idempotencyKey string) (*entity.Transfer, error) {
	var transferModel model.Transfer
	result := r.db.WithContext(ctx).
		Where("sender_id = ? AND idempotency_key = ?", senderID, idempotencyKey).
		First(&transferModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTransferNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return transferModelToEntity(&transferModel), nil
}

// ListByUser returns transfers where the user is sender or receiver, newest first
func (r *TransferRepository) ListByUser(ctx context.Context, q persistence.HistoryQuery) ([]*entity.Transfer, error) {
	query := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", q.UserID, q.UserID)

	if q.StartDate != nil {
		query = query.Where("created_at >= ?", *q.StartDate)
	}
	if q.EndDate != nil {
		query = query.Where("created_at <= ?", *q.EndDate)
	}

	var models []model.Transfer
	result := query.Order("created_at DESC").Limit(q.Limit).Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	transfers := make([]*entity.Transfer, len(models))
	for i := range models {
		transfers[i] = transferModelToEntity(&models[i])
	}
	return transfers, nil
}

// ListArchivable returns up to limit transfers older than the cutoff that are
// not referenced by an open payment request
func (r *TransferRepository) ListArchivable(ctx context.Context, olderThan time.Time, limit int) ([]*entity.Transfer, error) {
	var models []model.Transfer
	result := r.db.WithContext(ctx).
		Where("created_at < ?", olderThan).
		Where("id NOT IN (?)", r.db.Model(&model.PaymentRequest{}).
			Select("fulfilled_by").
			Where("status = ? AND fulfilled_by <> ''", "open")).
		Order("created_at ASC").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	transfers := make([]*entity.Transfer, len(models))
	for i := range models {
		transfers[i] = transferModelToEntity(&models[i])
	}
	return transfers, nil
}

// DeleteByIDs removes hot rows that were relocated to the warm tier
func (r *TransferRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Transfer{})
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return nil
}
