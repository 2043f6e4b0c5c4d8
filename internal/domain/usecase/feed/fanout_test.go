package feed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/payflow-labs/payflow/internal/domain/entity"
	mcore "github.com/payflow-labs/payflow/mocks/port/core"
	mmsg "github.com/payflow-labs/payflow/mocks/port/messaging"
	mpers "github.com/payflow-labs/payflow/mocks/port/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fanoutFixture struct {
	friends   *mpers.MockFriendshipRepository
	feed      *mpers.MockFeedRepository
	publisher *mmsg.MockEventPublisher
	fanout    *Fanout
	now       time.Time
}

func newFanoutFixture(t *testing.T) *fanoutFixture {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	mockTime := new(mcore.MockTimeProvider)
	mockTime.On("Now").Return(now).Maybe()

	logger := new(mcore.MockLogger)
	logger.On("Debug", mock.Anything, mock.Anything).Maybe()
	logger.On("Info", mock.Anything, mock.Anything).Maybe()
	logger.On("Warn", mock.Anything, mock.Anything).Maybe()
	logger.On("Error", mock.Anything, mock.Anything).Maybe()

	f := &fanoutFixture{
		friends:   new(mpers.MockFriendshipRepository),
		feed:      new(mpers.MockFeedRepository),
		publisher: new(mmsg.MockEventPublisher),
		now:       now,
	}

	fanout, err := NewFanout(f.friends, f.feed, f.publisher, 4, mockTime, logger)
	require.NoError(t, err)
	t.Cleanup(fanout.Close)

	f.fanout = fanout
	return f
}

func feedUserIDs(items []entity.FeedItem) []uint64 {
	out := make([]uint64, len(items))
	for i, item := range items {
		out[i] = item.UserID
	}
	return out
}

func TestFanoutRecipients(t *testing.T) {
	ctx := context.Background()

	t.Run("Private transfers reach only the two parties", func(t *testing.T) {
		f := newFanoutFixture(t)
		transfer := &entity.Transfer{ID: "tr-1", SenderID: 5, ReceiverID: 2, Visibility: entity.VisibilityPrivate}

		recipients, err := f.fanout.recipients(ctx, transfer)

		require.NoError(t, err)
		assert.Equal(t, []uint64{2, 5}, recipients)
		f.friends.AssertNotCalled(t, "ListAcceptedFriendIDs", mock.Anything, mock.Anything)
	})

	t.Run("Friends visibility adds both friend sets, deduplicated", func(t *testing.T) {
		f := newFanoutFixture(t)
		transfer := &entity.Transfer{ID: "tr-1", SenderID: 5, ReceiverID: 2, Visibility: entity.VisibilityFriends}

		f.friends.On("ListAcceptedFriendIDs", ctx, uint64(5)).Return([]uint64{7, 9}, nil)
		f.friends.On("ListAcceptedFriendIDs", ctx, uint64(2)).Return([]uint64{7, 11, 5}, nil)

		recipients, err := f.fanout.recipients(ctx, transfer)

		require.NoError(t, err)
		assert.Equal(t, []uint64{2, 5, 7, 9, 11}, recipients)
	})

	t.Run("Public visibility consults the friend graph the same way", func(t *testing.T) {
		f := newFanoutFixture(t)
		transfer := &entity.Transfer{ID: "tr-1", SenderID: 5, ReceiverID: 2, Visibility: entity.VisibilityPublic}

		f.friends.On("ListAcceptedFriendIDs", ctx, uint64(5)).Return([]uint64{}, nil)
		f.friends.On("ListAcceptedFriendIDs", ctx, uint64(2)).Return([]uint64{3}, nil)

		recipients, err := f.fanout.recipients(ctx, transfer)

		require.NoError(t, err)
		assert.Equal(t, []uint64{2, 3, 5}, recipients)
	})
}

func TestFanoutProcess(t *testing.T) {
	ctx := context.Background()

	t.Run("Inserts one item per recipient and publishes the event", func(t *testing.T) {
		f := newFanoutFixture(t)
		transfer := &entity.Transfer{ID: "tr-1", SenderID: 5, ReceiverID: 2, Visibility: entity.VisibilityFriends}

		f.friends.On("ListAcceptedFriendIDs", ctx, uint64(5)).Return([]uint64{7}, nil)
		f.friends.On("ListAcceptedFriendIDs", ctx, uint64(2)).Return([]uint64{}, nil)

		var inserted []entity.FeedItem
		f.feed.On("InsertItems", ctx, mock.AnythingOfType("[]entity.FeedItem")).
			Run(func(args mock.Arguments) {
				inserted = args.Get(1).([]entity.FeedItem)
			}).Return(nil).Once()
		f.publisher.On("PublishTransferCompleted", ctx, transfer).Return(nil).Once()

		f.fanout.process(ctx, transfer)

		require.Len(t, inserted, 3)
		assert.Equal(t, []uint64{2, 5, 7}, feedUserIDs(inserted))
		for _, item := range inserted {
			assert.Equal(t, "tr-1", item.TransferID)
			assert.Equal(t, f.now, item.CreatedAt)
		}
		f.publisher.AssertExpectations(t)
	})

	t.Run("Friend graph failure degrades to the two parties", func(t *testing.T) {
		f := newFanoutFixture(t)
		transfer := &entity.Transfer{ID: "tr-1", SenderID: 5, ReceiverID: 2, Visibility: entity.VisibilityPublic}

		f.friends.On("ListAcceptedFriendIDs", ctx, mock.AnythingOfType("uint64")).
			Return(nil, errors.New("social graph down"))

		var inserted []entity.FeedItem
		f.feed.On("InsertItems", ctx, mock.AnythingOfType("[]entity.FeedItem")).
			Run(func(args mock.Arguments) {
				inserted = args.Get(1).([]entity.FeedItem)
			}).Return(nil).Once()
		f.publisher.On("PublishTransferCompleted", ctx, transfer).Return(nil).Once()

		f.fanout.process(ctx, transfer)

		assert.Equal(t, []uint64{2, 5}, feedUserIDs(inserted))
	})

	t.Run("Insert and publish failures are swallowed", func(t *testing.T) {
		f := newFanoutFixture(t)
		transfer := &entity.Transfer{ID: "tr-1", SenderID: 5, ReceiverID: 2, Visibility: entity.VisibilityPrivate}

		f.feed.On("InsertItems", ctx, mock.AnythingOfType("[]entity.FeedItem")).
			Return(errors.New("insert failed"))
		f.publisher.On("PublishTransferCompleted", ctx, transfer).
			Return(errors.New("broker down"))

		// Must not panic; fan-out is best effort
		f.fanout.process(ctx, transfer)
	})
}

func TestFanoutTrigger(t *testing.T) {
	f := newFanoutFixture(t)
	transfer := &entity.Transfer{ID: "tr-1", SenderID: 5, ReceiverID: 2, Visibility: entity.VisibilityPrivate}

	var wg sync.WaitGroup
	wg.Add(2)

	f.feed.On("InsertItems", mock.Anything, mock.AnythingOfType("[]entity.FeedItem")).
		Run(func(mock.Arguments) { wg.Done() }).Return(nil).Once()
	f.publisher.On("PublishTransferCompleted", mock.Anything, transfer).
		Run(func(mock.Arguments) { wg.Done() }).Return(nil).Once()

	f.fanout.Trigger(transfer)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("fan-out did not complete in time")
	}

	f.feed.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}
