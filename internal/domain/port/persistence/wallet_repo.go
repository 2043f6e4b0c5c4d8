package persistence

import (
	"context"

	"github.com/payflow-labs/payflow/internal/domain/entity"
)

// WalletRepository defines wallet ledger persistence operations
type WalletRepository interface {
	// GetByUserID retrieves a wallet without locking it
	GetByUserID(ctx context.Context, userID uint64) (*entity.Wallet, error)

	// GetForUpdate retrieves a wallet under an exclusive row lock. Must be
	// called inside a unit of work; the lock is held until commit/rollback.
	GetForUpdate(ctx context.Context, userID uint64) (*entity.Wallet, error)

	// Create persists a new wallet
	Create(ctx context.Context, wallet *entity.Wallet) error

	// Update persists wallet balance changes
	Update(ctx context.Context, wallet *entity.Wallet) error

	// Exists checks whether a wallet exists for the user
	Exists(ctx context.Context, userID uint64) (bool, error)
}
