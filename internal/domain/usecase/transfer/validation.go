package transfer

import (
	"fmt"

	"github.com/payflow-labs/payflow/internal/domain/entity"
	errs "github.com/payflow-labs/payflow/internal/domain/error"
)

// Validator checks transfer requests before any lock is acquired
type Validator struct{}

// NewValidator creates a Validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks all request fields. Violations surface as validation
// errors and are never retried.
func (v *Validator) Validate(senderID, receiverID uint64, amountCents int64, visibility string, note string) error {
	if senderID == 0 || receiverID == 0 {
		return errs.ErrInvalidUserID
	}

	if senderID == receiverID {
		return errs.ErrSelfTransfer
	}

	if amountCents <= 0 {
		return errs.ErrInvalidAmount
	}

	if amountCents > entity.MaxTransferCents {
		return fmt.Errorf("%w: maximum is %s", errs.ErrAmountOverLimit, entity.CentsToString(entity.MaxTransferCents))
	}

	if !entity.IsValidVisibility(visibility) {
		return fmt.Errorf("%w: %s", errs.ErrInvalidVisibility, visibility)
	}

	if len(note) > entity.MaxNoteLength {
		return fmt.Errorf("%w: limit is %d characters", errs.ErrNoteTooLong, entity.MaxNoteLength)
	}

	return nil
}
