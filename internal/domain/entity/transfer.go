package entity

import (
	"time"

	errs "github.com/payflow-labs/payflow/internal/domain/error"
	coreport "github.com/payflow-labs/payflow/internal/domain/port/core"
)

// Visibility controls who sees a transfer in their feed
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityFriends Visibility = "friends"
	VisibilityPrivate Visibility = "private"
)

// IsValidVisibility checks a raw visibility value
func IsValidVisibility(v string) bool {
	switch Visibility(v) {
	case VisibilityPublic, VisibilityFriends, VisibilityPrivate:
		return true
	}
	return false
}

// TransferStatus defines possible status values for a transfer
type TransferStatus string

const (
	TransferCompleted TransferStatus = "completed"
	TransferFailed    TransferStatus = "failed"
)

// StorageTier tags where a historical record currently lives
type StorageTier string

const (
	TierHot  StorageTier = "hot"
	TierWarm StorageTier = "warm"
)

// MaxTransferCents is the fixed per-transfer maximum (500,000 cents)
const MaxTransferCents int64 = 500_000

// MaxNoteLength caps the free-text note attached to a transfer
const MaxNoteLength = 280

// Transfer is the immutable record of one wallet-to-wallet value movement.
// Created exactly once per logical transfer intent; after creation only its
// storage tier changes (hot -> warm -> purged).
type Transfer struct {
	ID                 string
	SenderID           uint64
	ReceiverID         uint64
	AmountCents        int64
	Note               string
	Visibility         Visibility
	Status             TransferStatus
	FundingSourceLabel string
	IdempotencyKey     string
	CreatedAt          time.Time
	Tier               StorageTier
}

// NewTransfer creates a completed transfer record. Validation of the request
// fields happens earlier, in the transfer validator; this constructor only
// guards invariants the record itself owns.
func NewTransfer(
	id string,
	senderID, receiverID uint64,
	amountCents int64,
	note string,
	visibility Visibility,
	fundingSourceLabel string,
	idempotencyKey string,
	timeProvider coreport.TimeProvider,
) (*Transfer, error) {
	if senderID == 0 || receiverID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if senderID == receiverID {
		return nil, errs.ErrSelfTransfer
	}
	if amountCents <= 0 {
		return nil, errs.ErrInvalidAmount
	}

	return &Transfer{
		ID:                 id,
		SenderID:           senderID,
		ReceiverID:         receiverID,
		AmountCents:        amountCents,
		Note:               note,
		Visibility:         visibility,
		Status:             TransferCompleted,
		FundingSourceLabel: fundingSourceLabel,
		IdempotencyKey:     idempotencyKey,
		CreatedAt:          timeProvider.Now(),
		Tier:               TierHot,
	}, nil
}

// AmountString returns the amount formatted as decimal currency units
func (t *Transfer) AmountString() string {
	return CentsToString(t.AmountCents)
}
