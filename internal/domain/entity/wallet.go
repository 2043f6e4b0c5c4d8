package entity

import (
	"time"

	errs "github.com/payflow-labs/payflow/internal/domain/error"
	coreport "github.com/payflow-labs/payflow/internal/domain/port/core"
)

// Wallet holds a user's stored balance. Balances are kept in integer cents
// and are mutated only by the transfer executor and the deposit/cashout
// operations, always under a row lock.
type Wallet struct {
	UserID        uint64
	balance       int64 // cents, never negative (private)
	pendingCents  int64 // cents reserved by in-flight external settlements
	CreatedAt     time.Time
	UpdatedAt     time.Time
	TransferCount uint64
}

// NewWallet creates a wallet for a user with an initial balance in cents
func NewWallet(userID uint64, initialCents int64, timeProvider coreport.TimeProvider) (*Wallet, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if initialCents < 0 {
		return nil, errs.ErrInvalidAmount
	}

	now := timeProvider.Now()
	return &Wallet{
		UserID:    userID,
		balance:   initialCents,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// RestoreWallet rebuilds a wallet entity from persisted state
func RestoreWallet(userID uint64, balanceCents, pendingCents int64, createdAt, updatedAt time.Time, transferCount uint64) *Wallet {
	return &Wallet{
		UserID:        userID,
		balance:       balanceCents,
		pendingCents:  pendingCents,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
		TransferCount: transferCount,
	}
}

// Balance returns the current balance in cents
func (w *Wallet) Balance() int64 {
	return w.balance
}

// PendingBalance returns the pending balance in cents
func (w *Wallet) PendingBalance() int64 {
	return w.pendingCents
}

// BalanceString returns the balance formatted as decimal currency units
func (w *Wallet) BalanceString() string {
	return CentsToString(w.balance)
}

// CanCover reports whether the stored balance alone covers the amount
func (w *Wallet) CanCover(amountCents int64) bool {
	return w.balance >= amountCents
}

// Debit subtracts amountCents from the balance. The balance invariant
// (never negative) is enforced here, not in the caller.
func (w *Wallet) Debit(amountCents int64, timeProvider coreport.TimeProvider) error {
	if amountCents < 0 {
		return errs.ErrInvalidAmount
	}
	if w.balance < amountCents {
		return errs.ErrInsufficientFunding
	}

	w.balance -= amountCents
	w.UpdatedAt = timeProvider.Now()
	w.TransferCount++
	return nil
}

// Credit adds amountCents to the balance
func (w *Wallet) Credit(amountCents int64, timeProvider coreport.TimeProvider) error {
	if amountCents < 0 {
		return errs.ErrInvalidAmount
	}

	w.balance += amountCents
	w.UpdatedAt = timeProvider.Now()
	w.TransferCount++
	return nil
}
