package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidAmount       = 4001
	CodeAmountOverLimit     = 4002
	CodeSelfTransfer        = 4003
	CodeInvalidUserID       = 4004
	CodeMissingIdempotency  = 4005
	CodeInvalidVisibility   = 4006
	CodeNoteTooLong         = 4007
	CodeInsufficientFunding = 4020
	CodeWalletNotFound      = 4040
	CodeTransferNotFound    = 4041
	CodeIdempotencyConflict = 4090
	CodeConcurrencyConflict = 4091
	CodeDuplicateTransfer   = 4092

	// 5xxx - Server / dependency errors
	CodeInternalServer  = 5000
	CodeExternalService = 5030
	CodeCircuitOpen     = 5031
	CodeDatabase        = 5032
)

// Base error types
var (
	// ErrInvalidAmount is returned when the amount is missing, malformed,
	// zero or negative
	ErrInvalidAmount = errors.New("amount must be a positive value")

	// ErrAmountOverLimit is returned when the amount exceeds the per-transfer maximum
	ErrAmountOverLimit = errors.New("amount exceeds the maximum allowed per transfer")

	// ErrSelfTransfer is returned when sender and receiver are the same wallet
	ErrSelfTransfer = errors.New("sender and receiver must be different users")

	// ErrInvalidUserID is returned when a user ID is zero or otherwise unusable
	ErrInvalidUserID = errors.New("user ID must be positive")

	// ErrMissingIdempotencyKey is returned when a mutating request carries no key
	ErrMissingIdempotencyKey = errors.New("idempotency key is required")

	// ErrInvalidVisibility is returned when the visibility value is not one of
	// public, friends or private
	ErrInvalidVisibility = errors.New("invalid visibility")

	// ErrNoteTooLong is returned when the transfer note exceeds the length cap
	ErrNoteTooLong = errors.New("note is too long")

	// ErrInsufficientFunding is returned when neither the wallet balance nor any
	// usable payment method covers the requested amount
	ErrInsufficientFunding = errors.New("insufficient funding")

	// ErrWalletNotFound is returned when the requested wallet doesn't exist
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrTransferNotFound is returned when the requested transfer doesn't exist
	ErrTransferNotFound = errors.New("transfer not found")

	// ErrIdempotencyConflict is returned when a request with the same key is
	// currently in flight; the caller should retry shortly
	ErrIdempotencyConflict = errors.New("an identical request is already in progress")

	// ErrConcurrencyConflict is returned on lock-wait timeouts and
	// serialization failures; the caller may retry with the same key
	ErrConcurrencyConflict = errors.New("concurrent operation conflict")

	// ErrDuplicateTransfer is returned when a transfer with the same
	// sender and idempotency key already exists
	ErrDuplicateTransfer = errors.New("transfer with this idempotency key already exists")

	// ErrExternalService is returned when a payment rail call fails
	ErrExternalService = errors.New("external payment service error")

	// ErrCircuitOpen is returned when the circuit breaker rejects a call
	// without attempting the network
	ErrCircuitOpen = errors.New("circuit breaker is open")

	// ErrAuditFailure marks audit sink write failures; it is logged to the
	// fallback channel and never propagated to the caller
	ErrAuditFailure = errors.New("audit log write failed")

	// ErrCacheUnavailable is returned when the key-value cache cannot be reached
	ErrCacheUnavailable = errors.New("cache unavailable")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrAmountOverLimit):
		return CodeAmountOverLimit
	case errors.Is(err, ErrSelfTransfer):
		return CodeSelfTransfer
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrMissingIdempotencyKey):
		return CodeMissingIdempotency
	case errors.Is(err, ErrInvalidVisibility):
		return CodeInvalidVisibility
	case errors.Is(err, ErrNoteTooLong):
		return CodeNoteTooLong
	case errors.Is(err, ErrInsufficientFunding):
		return CodeInsufficientFunding
	case errors.Is(err, ErrWalletNotFound):
		return CodeWalletNotFound
	case errors.Is(err, ErrTransferNotFound):
		return CodeTransferNotFound
	case errors.Is(err, ErrIdempotencyConflict):
		return CodeIdempotencyConflict
	case errors.Is(err, ErrConcurrencyConflict):
		return CodeConcurrencyConflict
	case errors.Is(err, ErrDuplicateTransfer):
		return CodeDuplicateTransfer
	case errors.Is(err, ErrCircuitOpen):
		return CodeCircuitOpen
	case errors.Is(err, ErrExternalService):
		return CodeExternalService
	case errors.Is(err, ErrDatabaseConnection):
		return CodeDatabase
	default:
		return CodeInternalServer
	}
}

// FromCode maps a standardized code back to its sentinel error, used when a
// cached failure outcome is replayed for an idempotent retry
func FromCode(code int) error {
	switch code {
	case CodeInvalidAmount:
		return ErrInvalidAmount
	case CodeAmountOverLimit:
		return ErrAmountOverLimit
	case CodeSelfTransfer:
		return ErrSelfTransfer
	case CodeInvalidUserID:
		return ErrInvalidUserID
	case CodeMissingIdempotency:
		return ErrMissingIdempotencyKey
	case CodeInvalidVisibility:
		return ErrInvalidVisibility
	case CodeNoteTooLong:
		return ErrNoteTooLong
	case CodeInsufficientFunding:
		return ErrInsufficientFunding
	case CodeWalletNotFound:
		return ErrWalletNotFound
	case CodeTransferNotFound:
		return ErrTransferNotFound
	case CodeIdempotencyConflict:
		return ErrIdempotencyConflict
	case CodeConcurrencyConflict:
		return ErrConcurrencyConflict
	case CodeDuplicateTransfer:
		return ErrDuplicateTransfer
	case CodeCircuitOpen:
		return ErrCircuitOpen
	case CodeExternalService:
		return ErrExternalService
	case CodeDatabase:
		return ErrDatabaseConnection
	default:
		return ErrInternalServer
	}
}

// IsValidationError reports whether the error is a request validation failure
// that the caller must fix before retrying
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrAmountOverLimit) ||
		errors.Is(err, ErrSelfTransfer) ||
		errors.Is(err, ErrInvalidUserID) ||
		errors.Is(err, ErrMissingIdempotencyKey) ||
		errors.Is(err, ErrInvalidVisibility) ||
		errors.Is(err, ErrNoteTooLong)
}

// IsInsufficientFundingError checks for the funding business failure
func IsInsufficientFundingError(err error) bool {
	return errors.Is(err, ErrInsufficientFunding)
}

// IsNotFoundError checks for any of the not-found variants
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrWalletNotFound) ||
		errors.Is(err, ErrTransferNotFound) ||
		errors.Is(err, ErrNotFound)
}

// IsConcurrencyConflictError checks for lock/serialization conflicts
func IsConcurrencyConflictError(err error) bool {
	return errors.Is(err, ErrConcurrencyConflict)
}

// IsIdempotencyConflictError checks for an in-flight duplicate request
func IsIdempotencyConflictError(err error) bool {
	return errors.Is(err, ErrIdempotencyConflict)
}

// IsCircuitOpenError checks whether a call was rejected by an open breaker
func IsCircuitOpenError(err error) bool {
	return errors.Is(err, ErrCircuitOpen)
}

// IsExternalServiceError checks for payment-rail failures, including fast
// failures from an open breaker
func IsExternalServiceError(err error) bool {
	return errors.Is(err, ErrExternalService) || errors.Is(err, ErrCircuitOpen)
}

// FundingError carries the balance context of a failed funding resolution
type FundingError struct {
	UserID          uint64
	RequestedCents  int64
	BalanceCents    int64
	VerifiedMethods int
}

// Error implements the error interface for FundingError
func (e *FundingError) Error() string {
	return fmt.Sprintf("insufficient funding for user %d (requested: %d cents, balance: %d cents, verified methods: %d)",
		e.UserID, e.RequestedCents, e.BalanceCents, e.VerifiedMethods)
}

// Unwrap allows errors.Is(err, ErrInsufficientFunding) on a FundingError
func (e *FundingError) Unwrap() error {
	return ErrInsufficientFunding
}

// NewFundingError creates a FundingError with balance details
func NewFundingError(userID uint64, requestedCents, balanceCents int64, verifiedMethods int) *FundingError {
	return &FundingError{
		UserID:          userID,
		RequestedCents:  requestedCents,
		BalanceCents:    balanceCents,
		VerifiedMethods: verifiedMethods,
	}
}
