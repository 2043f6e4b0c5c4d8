package messaging

import (
	"context"

	"github.com/payflow-labs/payflow/internal/domain/entity"
)

// EventPublisher emits best-effort domain events for downstream consumers
// (notifications, analytics). Publish failures are logged, never propagated.
type EventPublisher interface {
	// PublishTransferCompleted emits a transfer.completed event
	PublishTransferCompleted(ctx context.Context, transfer *entity.Transfer) error
}
