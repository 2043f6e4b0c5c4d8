package entity

import (
	"testing"
	"time"

	errs "github.com/payflow-labs/payflow/internal/domain/error"
	coremocks "github.com/payflow-labs/payflow/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransfer(t *testing.T) {
	fixedTime := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.On("Now").Return(fixedTime).Maybe()

	t.Run("Valid transfer", func(t *testing.T) {
		transfer, err := NewTransfer("tr-1", 1, 2, 1250, "lunch", VisibilityFriends, "balance", "key-1", mockTime)

		require.NoError(t, err)
		assert.Equal(t, "tr-1", transfer.ID)
		assert.Equal(t, uint64(1), transfer.SenderID)
		assert.Equal(t, uint64(2), transfer.ReceiverID)
		assert.Equal(t, int64(1250), transfer.AmountCents)
		assert.Equal(t, "12.50", transfer.AmountString())
		assert.Equal(t, TransferCompleted, transfer.Status)
		assert.Equal(t, TierHot, transfer.Tier)
		assert.Equal(t, "key-1", transfer.IdempotencyKey)
		assert.Equal(t, fixedTime, transfer.CreatedAt)
	})

	t.Run("Zero sender", func(t *testing.T) {
		transfer, err := NewTransfer("tr-1", 0, 2, 1250, "", VisibilityPublic, "balance", "key-1", mockTime)

		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
		assert.Nil(t, transfer)
	})

	t.Run("Zero receiver", func(t *testing.T) {
		transfer, err := NewTransfer("tr-1", 1, 0, 1250, "", VisibilityPublic, "balance", "key-1", mockTime)

		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
		assert.Nil(t, transfer)
	})

	t.Run("Self transfer", func(t *testing.T) {
		transfer, err := NewTransfer("tr-1", 7, 7, 1250, "", VisibilityPublic, "balance", "key-1", mockTime)

		assert.ErrorIs(t, err, errs.ErrSelfTransfer)
		assert.Nil(t, transfer)
	})

	t.Run("Non-positive amount", func(t *testing.T) {
		for _, amount := range []int64{0, -1} {
			transfer, err := NewTransfer("tr-1", 1, 2, amount, "", VisibilityPublic, "balance", "key-1", mockTime)

			assert.ErrorIs(t, err, errs.ErrInvalidAmount)
			assert.Nil(t, transfer)
		}
	})
}

func TestIsValidVisibility(t *testing.T) {
	assert.True(t, IsValidVisibility("public"))
	assert.True(t, IsValidVisibility("friends"))
	assert.True(t, IsValidVisibility("private"))
	assert.False(t, IsValidVisibility(""))
	assert.False(t, IsValidVisibility("Public"))
	assert.False(t, IsValidVisibility("everyone"))
}
