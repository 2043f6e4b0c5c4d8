package repository

import (
	"context"
	"fmt"

	"github.com/payflow-labs/payflow/internal/domain/entity"
	errs "github.com/payflow-labs/payflow/internal/domain/error"
	coreport "github.com/payflow-labs/payflow/internal/domain/port/core"
	"github.com/payflow-labs/payflow/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// FriendshipRepository implements read-only access to the friend graph
type FriendshipRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewFriendshipRepository creates a new FriendshipRepository instance
func NewFriendshipRepository(db *gorm.DB, logger coreport.Logger) *FriendshipRepository {
	return &FriendshipRepository{db: db, logger: logger}
}

// ListAcceptedFriendIDs returns the IDs of the user's accepted friends
func (r *FriendshipRepository) ListAcceptedFriendIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	result := r.db.WithContext(ctx).Model(&model.Friendship{}).
		Where("user_id = ? AND status = ?", userID, "accepted").
		Pluck("friend_id", &ids)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return ids, nil
}

// FeedRepository writes denormalized feed-pointer rows
type FeedRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewFeedRepository creates a new FeedRepository instance
func NewFeedRepository(db *gorm.DB, logger coreport.Logger) *FeedRepository {
	return &FeedRepository{db: db, logger: logger}
}

// InsertItems persists a batch of feed items
func (r *FeedRepository) InsertItems(ctx context.Context, items []entity.FeedItem) error {
	if len(items) == 0 {
		return nil
	}

	models := make([]model.FeedItem, len(items))
	for i, item := range items {
		models[i] = model.FeedItem{
			UserID:     item.UserID,
			TransferID: item.TransferID,
			CreatedAt:  item.CreatedAt,
		}
	}

	result := r.db.WithContext(ctx).CreateInBatches(models, 200)
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return nil
}
