package entity

import (
	"time"
)

// Audit actions recorded by the money-movement core
const (
	ActionTransferInitiated = "transfer.initiated"
	ActionTransferCompleted = "transfer.completed"
	ActionTransferFailed    = "transfer.failed"
	ActionDepositCompleted  = "deposit.completed"
	ActionDepositFailed     = "deposit.failed"
	ActionCashoutCompleted  = "cashout.completed"
	ActionCashoutFailed     = "cashout.failed"
	ActionArchivalRun       = "archival.run"
)

// Audit outcomes
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Audit actor types
const (
	ActorUser     = "user"
	ActorOperator = "operator"
	ActorSystem   = "system"
)

// RequestContext carries the request metadata attached to audit entries
type RequestContext struct {
	IP            string
	UserAgent     string
	CorrelationID string
}

// AuditLogEntry is one append-only record of a financial or security-relevant
// action. Entries are never updated or deleted inside the retention window,
// and details are sanitized before they reach this type.
type AuditLogEntry struct {
	ID            string
	ActorID       uint64
	ActorType     string
	Action        string
	ResourceType  string
	ResourceID    string
	Outcome       string
	Details       map[string]any
	IP            string
	UserAgent     string
	CorrelationID string
	CreatedAt     time.Time
}
