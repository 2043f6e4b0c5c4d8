package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorClassifier recognizes the postgres failure classes the repositories
// map onto domain sentinels: unique-index violations on the transfer
// idempotency index and lock or serialization failures on wallet rows.
type ErrorClassifier struct{}

// NewErrorClassifier creates a new ErrorClassifier
func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{}
}

// IsDuplicateKeyError checks if the error is a unique-index violation
func (c *ErrorClassifier) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key value")
}

// IsLockError checks if the error is a row-lock or serialization failure
func (c *ErrorClassifier) IsLockError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "deadlock detected") ||
		strings.Contains(msg, "lock timeout") ||
		strings.Contains(msg, "could not serialize access")
}
