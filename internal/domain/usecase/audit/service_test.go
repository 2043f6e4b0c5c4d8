package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/payflow-labs/payflow/internal/domain/entity"
	"github.com/payflow-labs/payflow/internal/domain/port/persistence"
	mcore "github.com/payflow-labs/payflow/mocks/port/core"
	mpers "github.com/payflow-labs/payflow/mocks/port/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestServiceRecord(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	newFixture := func() (*mpers.MockAuditLogRepository, *mcore.MockLogger, *Service) {
		repo := new(mpers.MockAuditLogRepository)
		fallback := new(mcore.MockLogger)
		mockTime := new(mcore.MockTimeProvider)
		mockTime.On("Now").Return(now).Maybe()
		return repo, fallback, NewService(repo, fallback, mockTime)
	}

	t.Run("Entry is sanitized and stamped before persistence", func(t *testing.T) {
		repo, _, service := newFixture()

		var appended *entity.AuditLogEntry
		repo.On("Append", ctx, mock.AnythingOfType("*entity.AuditLogEntry")).
			Run(func(args mock.Arguments) {
				appended = args.Get(1).(*entity.AuditLogEntry)
			}).Return(nil).Once()

		service.Record(ctx, Event{
			ActorID:      5,
			ActorType:    entity.ActorUser,
			Action:       entity.ActionTransferCompleted,
			ResourceType: "transfer",
			ResourceID:   "tr-1",
			Outcome:      entity.OutcomeSuccess,
			Details: map[string]any{
				"amount_cents":   int64(2500),
				"account_number": "9876543210",
			},
			Request: entity.RequestContext{IP: "10.0.0.1", CorrelationID: "corr-1"},
		})

		require.NotNil(t, appended)
		assert.NotEmpty(t, appended.ID)
		assert.Equal(t, now, appended.CreatedAt)
		assert.Equal(t, uint64(5), appended.ActorID)
		assert.Equal(t, "corr-1", appended.CorrelationID)
		assert.Equal(t, "****3210", appended.Details["account_number"])
		assert.Equal(t, int64(2500), appended.Details["amount_cents"])
		repo.AssertExpectations(t)
	})

	t.Run("Sink failure routes the entry to the fallback channel", func(t *testing.T) {
		repo, fallback, service := newFixture()

		repo.On("Append", ctx, mock.AnythingOfType("*entity.AuditLogEntry")).
			Return(errors.New("sink down"))

		var logged map[string]any
		fallback.On("Error", mock.AnythingOfType("string"), mock.Anything).
			Run(func(args mock.Arguments) {
				logged = args.Get(1).(map[string]any)
			}).Once()

		// Record must not panic or surface the failure
		service.Record(ctx, Event{
			ActorID: 5,
			Action:  entity.ActionTransferFailed,
			Outcome: entity.OutcomeFailure,
		})

		require.NotNil(t, logged)
		assert.Equal(t, true, logged["audit_fallback"])
		assert.Equal(t, entity.ActionTransferFailed, logged["action"])
		fallback.AssertExpectations(t)
	})
}

func TestServiceQuery(t *testing.T) {
	ctx := context.Background()

	repo := new(mpers.MockAuditLogRepository)
	mockTime := new(mcore.MockTimeProvider)
	service := NewService(repo, new(mcore.MockLogger), mockTime)

	filter := persistence.AuditFilter{ActorID: 5, Action: entity.ActionTransferCompleted, Limit: 10}
	expected := []*entity.AuditLogEntry{{ID: "a-1"}, {ID: "a-2"}}
	repo.On("Query", ctx, filter).Return(expected, nil)

	entries, err := service.Query(ctx, filter)

	require.NoError(t, err)
	assert.Equal(t, expected, entries)
}
