package persistence

import (
	"context"
	"time"

	"github.com/payflow-labs/payflow/internal/domain/entity"
)

// CashoutRepository defines persistence operations for hot-tier cashouts
type CashoutRepository interface {
	Create(ctx context.Context, cashout *entity.Cashout) error
	ListArchivable(ctx context.Context, olderThan time.Time, limit int) ([]*entity.Cashout, error)
	DeleteByIDs(ctx context.Context, ids []string) error
}

// PaymentRequestRepository defines persistence operations for hot-tier
// payment requests. Open requests are never archivable.
type PaymentRequestRepository interface {
	ListArchivable(ctx context.Context, olderThan time.Time, limit int) ([]*entity.PaymentRequest, error)
	DeleteByIDs(ctx context.Context, ids []string) error
}

// ArchiveStore is the warm storage tier. Aged records are relocated here by
// the archival manager and remain queryable until the compliance retention
// window closes.
type ArchiveStore interface {
	StoreTransfers(ctx context.Context, transfers []*entity.Transfer) error
	StoreCashouts(ctx context.Context, cashouts []*entity.Cashout) error
	StorePaymentRequests(ctx context.Context, requests []*entity.PaymentRequest) error

	// ListTransfersByUser reads warm-tier transfers for tiered history queries
	ListTransfersByUser(ctx context.Context, q HistoryQuery) ([]*entity.Transfer, error)

	// PurgeOlderThan permanently deletes archive records past the compliance
	// retention window. Returns the number of documents removed.
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
