package transfer

import (
	"strings"
	"testing"

	"github.com/payflow-labs/payflow/internal/domain/entity"
	errs "github.com/payflow-labs/payflow/internal/domain/error"
	"github.com/stretchr/testify/assert"
)

func TestValidatorValidate(t *testing.T) {
	validator := NewValidator()

	t.Run("Valid request", func(t *testing.T) {
		err := validator.Validate(1, 2, 1250, "friends", "lunch")
		assert.NoError(t, err)
	})

	testCases := []struct {
		name        string
		senderID    uint64
		receiverID  uint64
		amountCents int64
		visibility  string
		note        string
		expected    error
	}{
		{"Zero sender", 0, 2, 1250, "public", "", errs.ErrInvalidUserID},
		{"Zero receiver", 1, 0, 1250, "public", "", errs.ErrInvalidUserID},
		{"Self transfer", 5, 5, 1250, "public", "", errs.ErrSelfTransfer},
		{"Zero amount", 1, 2, 0, "public", "", errs.ErrInvalidAmount},
		{"Negative amount", 1, 2, -100, "public", "", errs.ErrInvalidAmount},
		{"Amount over the per-transfer limit", 1, 2, entity.MaxTransferCents + 1, "public", "", errs.ErrAmountOverLimit},
		{"Unknown visibility", 1, 2, 1250, "everyone", "", errs.ErrInvalidVisibility},
		{"Empty visibility", 1, 2, 1250, "", "", errs.ErrInvalidVisibility},
		{"Note over the length cap", 1, 2, 1250, "public", strings.Repeat("a", entity.MaxNoteLength+1), errs.ErrNoteTooLong},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validator.Validate(tc.senderID, tc.receiverID, tc.amountCents, tc.visibility, tc.note)
			assert.ErrorIs(t, err, tc.expected)
		})
	}

	t.Run("Amount exactly at the limit", func(t *testing.T) {
		err := validator.Validate(1, 2, entity.MaxTransferCents, "private", "")
		assert.NoError(t, err)
	})

	t.Run("Note exactly at the length cap", func(t *testing.T) {
		err := validator.Validate(1, 2, 1250, "public", strings.Repeat("a", entity.MaxNoteLength))
		assert.NoError(t, err)
	})
}
