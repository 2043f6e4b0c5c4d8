package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestErrorClassifierDuplicateKey(t *testing.T) {
	c := NewErrorClassifier()

	t.Run("Postgres unique violation", func(t *testing.T) {
		err := errors.New(`ERROR: duplicate key value violates unique constraint "idx_transfers_sender_idempotency" (SQLSTATE 23505)`)
		assert.True(t, c.IsDuplicateKeyError(err))
	})

	t.Run("Translated gorm error", func(t *testing.T) {
		assert.True(t, c.IsDuplicateKeyError(gorm.ErrDuplicatedKey))
		assert.True(t, c.IsDuplicateKeyError(fmt.Errorf("create transfer: %w", gorm.ErrDuplicatedKey)))
	})

	t.Run("Other errors", func(t *testing.T) {
		assert.False(t, c.IsDuplicateKeyError(nil))
		assert.False(t, c.IsDuplicateKeyError(errors.New("deadlock detected")))
	})
}

func TestErrorClassifierLock(t *testing.T) {
	c := NewErrorClassifier()

	lockErrors := []string{
		"ERROR: deadlock detected (SQLSTATE 40P01)",
		"ERROR: canceling statement due to lock timeout (SQLSTATE 55P03)",
		"ERROR: could not serialize access due to concurrent update (SQLSTATE 40001)",
	}
	for _, msg := range lockErrors {
		t.Run(msg, func(t *testing.T) {
			assert.True(t, c.IsLockError(errors.New(msg)))
		})
	}

	assert.False(t, c.IsLockError(nil))
	assert.False(t, c.IsLockError(errors.New("duplicate key value violates unique constraint")))
}
