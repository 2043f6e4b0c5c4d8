package entity

import "time"

// FeedItem is a denormalized feed pointer: one row per user who should see a
// completed transfer. Derived, best-effort data, never authoritative state.
type FeedItem struct {
	UserID     uint64
	TransferID string
	CreatedAt  time.Time
}
