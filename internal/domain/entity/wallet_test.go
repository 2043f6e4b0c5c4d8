package entity

import (
	"testing"
	"time"

	errs "github.com/payflow-labs/payflow/internal/domain/error"
	coremocks "github.com/payflow-labs/payflow/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWallet(t *testing.T) {
	fixedTime := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.On("Now").Return(fixedTime).Maybe()

	t.Run("Valid wallet creation", func(t *testing.T) {
		w, err := NewWallet(1, 10000, mockTime)

		require.NoError(t, err)
		assert.Equal(t, uint64(1), w.UserID)
		assert.Equal(t, int64(10000), w.Balance())
		assert.Equal(t, "100.00", w.BalanceString())
		assert.Equal(t, fixedTime, w.CreatedAt)
		assert.Equal(t, fixedTime, w.UpdatedAt)
		assert.Equal(t, uint64(0), w.TransferCount)
	})

	t.Run("Zero user ID", func(t *testing.T) {
		w, err := NewWallet(0, 10000, mockTime)

		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
		assert.Nil(t, w)
	})

	t.Run("Negative initial balance", func(t *testing.T) {
		w, err := NewWallet(1, -1, mockTime)

		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		assert.Nil(t, w)
	})

	t.Run("Zero initial balance", func(t *testing.T) {
		w, err := NewWallet(1, 0, mockTime)

		require.NoError(t, err)
		assert.Equal(t, int64(0), w.Balance())
	})
}

func TestWalletDebit(t *testing.T) {
	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	debitAt := time.Date(2025, 3, 1, 13, 0, 0, 0, time.UTC)

	t.Run("Successful debit", func(t *testing.T) {
		mockTime := coremocks.NewMockTimeProvider(t)
		mockTime.On("Now").Return(debitAt).Once()

		w := RestoreWallet(1, 10000, 0, createdAt, createdAt, 3)
		err := w.Debit(2500, mockTime)

		require.NoError(t, err)
		assert.Equal(t, int64(7500), w.Balance())
		assert.Equal(t, debitAt, w.UpdatedAt)
		assert.Equal(t, uint64(4), w.TransferCount)
	})

	t.Run("Debit of the full balance", func(t *testing.T) {
		mockTime := coremocks.NewMockTimeProvider(t)
		mockTime.On("Now").Return(debitAt).Once()

		w := RestoreWallet(1, 10000, 0, createdAt, createdAt, 0)
		err := w.Debit(10000, mockTime)

		require.NoError(t, err)
		assert.Equal(t, int64(0), w.Balance())
	})

	t.Run("Debit exceeding the balance never goes negative", func(t *testing.T) {
		mockTime := coremocks.NewMockTimeProvider(t)

		w := RestoreWallet(1, 10000, 0, createdAt, createdAt, 0)
		err := w.Debit(10001, mockTime)

		assert.ErrorIs(t, err, errs.ErrInsufficientFunding)
		assert.Equal(t, int64(10000), w.Balance())
		assert.Equal(t, createdAt, w.UpdatedAt)
		assert.Equal(t, uint64(0), w.TransferCount)
	})

	t.Run("Negative debit amount", func(t *testing.T) {
		mockTime := coremocks.NewMockTimeProvider(t)

		w := RestoreWallet(1, 10000, 0, createdAt, createdAt, 0)
		err := w.Debit(-1, mockTime)

		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		assert.Equal(t, int64(10000), w.Balance())
	})

	t.Run("Zero debit is a no-op on the balance", func(t *testing.T) {
		mockTime := coremocks.NewMockTimeProvider(t)
		mockTime.On("Now").Return(debitAt).Once()

		w := RestoreWallet(1, 10000, 0, createdAt, createdAt, 0)
		err := w.Debit(0, mockTime)

		require.NoError(t, err)
		assert.Equal(t, int64(10000), w.Balance())
	})
}

func TestWalletCredit(t *testing.T) {
	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	creditAt := time.Date(2025, 3, 1, 13, 0, 0, 0, time.UTC)

	t.Run("Successful credit", func(t *testing.T) {
		mockTime := coremocks.NewMockTimeProvider(t)
		mockTime.On("Now").Return(creditAt).Once()

		w := RestoreWallet(2, 500, 0, createdAt, createdAt, 1)
		err := w.Credit(2500, mockTime)

		require.NoError(t, err)
		assert.Equal(t, int64(3000), w.Balance())
		assert.Equal(t, creditAt, w.UpdatedAt)
		assert.Equal(t, uint64(2), w.TransferCount)
	})

	t.Run("Negative credit amount", func(t *testing.T) {
		mockTime := coremocks.NewMockTimeProvider(t)

		w := RestoreWallet(2, 500, 0, createdAt, createdAt, 0)
		err := w.Credit(-1, mockTime)

		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		assert.Equal(t, int64(500), w.Balance())
	})
}

func TestWalletCanCover(t *testing.T) {
	createdAt := time.Now()
	w := RestoreWallet(1, 1000, 0, createdAt, createdAt, 0)

	assert.True(t, w.CanCover(999))
	assert.True(t, w.CanCover(1000))
	assert.False(t, w.CanCover(1001))
}
