package persistence

import (
	"context"

	"github.com/payflow-labs/payflow/internal/domain/entity"
)

// FriendshipRepository provides read-only access to the friend graph,
// consulted by feed fan-out to compute recipient sets
type FriendshipRepository interface {
	// ListAcceptedFriendIDs returns the IDs of the user's accepted friends
	ListAcceptedFriendIDs(ctx context.Context, userID uint64) ([]uint64, error)
}

// FeedRepository writes denormalized feed-pointer rows for fast feed reads
type FeedRepository interface {
	// InsertItems persists a batch of feed items
	InsertItems(ctx context.Context, items []entity.FeedItem) error
}
