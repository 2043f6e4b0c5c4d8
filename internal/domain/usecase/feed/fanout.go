package feed

import (
	"context"
	"sort"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/payflow-labs/payflow/internal/domain/entity"
	coreport "github.com/payflow-labs/payflow/internal/domain/port/core"
	"github.com/payflow-labs/payflow/internal/domain/port/messaging"
	"github.com/payflow-labs/payflow/internal/domain/port/persistence"
)

const fanoutTimeout = 10 * time.Second

// Fanout propagates committed transfers to feed recipients on a bounded
// worker pool and emits the transfer.completed event. Everything here is
// best effort: a failed fan-out degrades feed freshness, never money
// movement.
type Fanout struct {
	friends   persistence.FriendshipRepository
	feed      persistence.FeedRepository
	publisher messaging.EventPublisher
	pool      *ants.Pool
	clock     coreport.TimeProvider
	logger    coreport.Logger
}

// NewFanout creates the fan-out worker backed by a pool of workerCount
// goroutines. Trigger blocks briefly when the pool is saturated rather than
// dropping work.
func NewFanout(
	friends persistence.FriendshipRepository,
	feed persistence.FeedRepository,
	publisher messaging.EventPublisher,
	workerCount int,
	clock coreport.TimeProvider,
	logger coreport.Logger,
) (*Fanout, error) {
	pool, err := ants.NewPool(workerCount, ants.WithNonblocking(false))
	if err != nil {
		return nil, err
	}
	return &Fanout{
		friends:   friends,
		feed:      feed,
		publisher: publisher,
		pool:      pool,
		clock:     clock,
		logger:    logger,
	}, nil
}

// Trigger schedules fan-out for a committed transfer. Called on the request
// path after commit, so submission failures are logged and swallowed.
func (f *Fanout) Trigger(transfer *entity.Transfer) {
	err := f.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), fanoutTimeout)
		defer cancel()
		f.process(ctx, transfer)
	})
	if err != nil {
		f.logger.Error("Failed to schedule feed fan-out", map[string]any{
			"transfer_id": transfer.ID,
			"error":       err.Error(),
		})
	}
}

// Close drains and releases the worker pool
func (f *Fanout) Close() {
	f.pool.Release()
}

func (f *Fanout) process(ctx context.Context, transfer *entity.Transfer) {
	recipients, err := f.recipients(ctx, transfer)
	if err != nil {
		f.logger.Error("Failed to compute feed recipients", map[string]any{
			"transfer_id": transfer.ID,
			"error":       err.Error(),
		})
		recipients = participants(transfer)
	}

	items := make([]entity.FeedItem, 0, len(recipients))
	now := f.clock.Now()
	for _, userID := range recipients {
		items = append(items, entity.FeedItem{
			UserID:     userID,
			TransferID: transfer.ID,
			CreatedAt:  now,
		})
	}

	if err := f.feed.InsertItems(ctx, items); err != nil {
		f.logger.Error("Failed to insert feed items", map[string]any{
			"transfer_id": transfer.ID,
			"recipients":  len(items),
			"error":       err.Error(),
		})
	}

	if err := f.publisher.PublishTransferCompleted(ctx, transfer); err != nil {
		f.logger.Warn("Failed to publish transfer event", map[string]any{
			"transfer_id": transfer.ID,
			"error":       err.Error(),
		})
	}
}

// recipients computes the visibility-dependent recipient set: both parties
// always see the transfer, and public or friends visibility adds both
// parties' accepted friends
func (f *Fanout) recipients(ctx context.Context, transfer *entity.Transfer) ([]uint64, error) {
	seen := map[uint64]struct{}{
		transfer.SenderID:   {},
		transfer.ReceiverID: {},
	}

	if transfer.Visibility != entity.VisibilityPrivate {
		senderFriends, err := f.friends.ListAcceptedFriendIDs(ctx, transfer.SenderID)
		if err != nil {
			return nil, err
		}
		receiverFriends, err := f.friends.ListAcceptedFriendIDs(ctx, transfer.ReceiverID)
		if err != nil {
			return nil, err
		}
		for _, id := range senderFriends {
			seen[id] = struct{}{}
		}
		for _, id := range receiverFriends {
			seen[id] = struct{}{}
		}
	}

	out := make([]uint64, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func participants(transfer *entity.Transfer) []uint64 {
	if transfer.SenderID == transfer.ReceiverID {
		return []uint64{transfer.SenderID}
	}
	if transfer.SenderID < transfer.ReceiverID {
		return []uint64{transfer.SenderID, transfer.ReceiverID}
	}
	return []uint64{transfer.ReceiverID, transfer.SenderID}
}
