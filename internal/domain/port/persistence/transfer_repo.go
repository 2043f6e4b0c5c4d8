package persistence

import (
	"context"
	"time"

	"github.com/payflow-labs/payflow/internal/domain/entity"
)

// HistoryQuery filters a transfer history read
type HistoryQuery struct {
	UserID    uint64
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
}

// TransferRepository defines persistence operations for hot-tier transfers
type TransferRepository interface {
	// Create persists a new transfer row
	Create(ctx context.Context, transfer *entity.Transfer) error

	// GetByID retrieves a transfer by its ID
	GetByID(ctx context.Context, id string) (*entity.Transfer, error)

	// GetBySenderAndKey retrieves the transfer created for a given sender and
	// idempotency key, or ErrTransferNotFound. Backed by a unique index, this
	// is the durable idempotency layer.
	GetBySenderAndKey(ctx context.Context, senderID uint64, idempotencyKey string) (*entity.Transfer, error)

	// ListByUser returns transfers where the user is sender or receiver,
	// newest first
	ListByUser(ctx context.Context, q HistoryQuery) ([]*entity.Transfer, error)

	// ListArchivable returns up to limit transfers older than the cutoff that
	// are not referenced by an open payment request
	ListArchivable(ctx context.Context, olderThan time.Time, limit int) ([]*entity.Transfer, error)

	// DeleteByIDs removes hot rows that were relocated to the warm tier
	DeleteByIDs(ctx context.Context, ids []string) error
}
