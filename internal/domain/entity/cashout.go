package entity

import "time"

// CashoutStatus defines possible status values for a cashout
type CashoutStatus string

const (
	CashoutCompleted CashoutStatus = "completed"
	CashoutFailed    CashoutStatus = "failed"
)

// Cashout records a withdrawal from a wallet balance to a linked bank account
type Cashout struct {
	ID               string
	UserID           uint64
	AmountCents      int64
	DestinationLabel string
	Status           CashoutStatus
	CreatedAt        time.Time
	Tier             StorageTier
}

// PaymentRequestStatus defines possible status values for a payment request
type PaymentRequestStatus string

const (
	RequestOpen     PaymentRequestStatus = "open"
	RequestPaid     PaymentRequestStatus = "paid"
	RequestDeclined PaymentRequestStatus = "declined"
)

// PaymentRequest is a request for money from another user. The archival
// manager must not move a transfer that an open request still references.
type PaymentRequest struct {
	ID          string
	RequesterID uint64
	TargetID    uint64
	AmountCents int64
	Note        string
	Status      PaymentRequestStatus
	FulfilledBy string // transfer ID once paid
	CreatedAt   time.Time
	Tier        StorageTier
}
