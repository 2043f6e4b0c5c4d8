package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/payflow-labs/payflow/internal/domain/entity"
	errs "github.com/payflow-labs/payflow/internal/domain/error"
	coreport "github.com/payflow-labs/payflow/internal/domain/port/core"
	"github.com/payflow-labs/payflow/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WalletRepository implements persistence.WalletRepository using GORM
type WalletRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewWalletRepository creates a new WalletRepository instance
func NewWalletRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *WalletRepository {
	return &WalletRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *WalletRepository) modelToEntity(walletModel *model.Wallet) *entity.Wallet {
	return entity.RestoreWallet(
		walletModel.UserID,
		walletModel.Balance,
		walletModel.PendingCents,
		walletModel.CreatedAt,
		walletModel.UpdatedAt,
		walletModel.TransferCount,
	)
}

// handleDatabaseError standardizes database error handling
func (r *WalletRepository) handleDatabaseError(operation string, err error, userID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("Wallet not found", map[string]any{
			"user_id": userID,
		})
		return errs.ErrWalletNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})

	if r.errorClassifier.IsLockError(err) {
		return fmt.Errorf("%w: %s", errs.ErrConcurrencyConflict, err.Error())
	}

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByUserID retrieves a wallet without locking it
func (r *WalletRepository) GetByUserID(ctx context.Context, userID uint64) (*entity.Wallet, error) {
	var walletModel model.Wallet
	result := r.db.WithContext(ctx).First(&walletModel, userID)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting wallet", result.Error, userID)
	}

	return r.modelToEntity(&walletModel), nil
}

// GetForUpdate retrieves a wallet under a FOR UPDATE row lock. Must run
// inside a unit of work.
func (r *WalletRepository) GetForUpdate(ctx context.Context, userID uint64) (*entity.Wallet, error) {
	var walletModel model.Wallet
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&walletModel, userID)
	if result.Error != nil {
		return nil, r.handleDatabaseError("locking wallet", result.Error, userID)
	}

	return r.modelToEntity(&walletModel), nil
}

// Create creates a new wallet
func (r *WalletRepository) Create(ctx context.Context, wallet *entity.Wallet) error {
	walletModel := model.Wallet{
		UserID:        wallet.UserID,
		Balance:       wallet.Balance(),
		PendingCents:  wallet.PendingBalance(),
		CreatedAt:     wallet.CreatedAt,
		UpdatedAt:     wallet.UpdatedAt,
		TransferCount: wallet.TransferCount,
	}

	result := r.db.WithContext(ctx).Create(&walletModel)
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			return fmt.Errorf("%w: wallet for user %d already exists", errs.ErrConstraintViolation, wallet.UserID)
		}
		return r.handleDatabaseError("creating wallet", result.Error, wallet.UserID)
	}

	r.logger.Info("Wallet created", map[string]any{
		"user_id": wallet.UserID,
		"balance": wallet.Balance(),
	})
	return nil
}

// Update persists a mutated wallet
func (r *WalletRepository) Update(ctx context.Context, wallet *entity.Wallet) error {
	result := r.db.WithContext(ctx).Model(&model.Wallet{}).
		Where("user_id = ?", wallet.UserID).
		Updates(map[string]interface{}{
			"balance":        wallet.Balance(),
			"pending_cents":  wallet.PendingBalance(),
			"updated_at":     wallet.UpdatedAt,
			"transfer_count": wallet.TransferCount,
		})

	if result.Error != nil {
		return r.handleDatabaseError("updating wallet", result.Error, wallet.UserID)
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("Wallet not found during update", map[string]any{
			"user_id": wallet.UserID,
		})
		return errs.ErrWalletNotFound
	}

	return nil
}

// Exists reports whether a wallet exists for the user
func (r *WalletRepository) Exists(ctx context.Context, userID uint64) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Wallet{}).
		Where("user_id = ?", userID).
		Count(&count)
	if result.Error != nil {
		return false, r.handleDatabaseError("checking wallet existence", result.Error, userID)
	}
	return count > 0, nil
}
