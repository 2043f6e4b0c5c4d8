package transfer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/payflow-labs/payflow/internal/domain/entity"
	errs "github.com/payflow-labs/payflow/internal/domain/error"
	coreport "github.com/payflow-labs/payflow/internal/domain/port/core"
	"github.com/payflow-labs/payflow/internal/domain/usecase/idempotency"
)

// failedOutcome is the cached payload for a terminal business failure
type failedOutcome struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Service is the submit-transfer entry point. It layers the generic
// request-level idempotency guard over the executor's durable one: cached
// outcomes replay without re-executing, in-flight duplicates surface as
// conflicts, and terminal outcomes (success or business failure) are stored
// for 24 hours.
type Service struct {
	executor *Executor
	guard    *idempotency.Guard
	logger   coreport.Logger
}

// NewService creates the transfer service
func NewService(executor *Executor, guard *idempotency.Guard, logger coreport.Logger) *Service {
	return &Service{
		executor: executor,
		guard:    guard,
		logger:   logger,
	}
}

// Submit executes a transfer intent under the idempotency protocol. Callers
// must supply a fresh key per logical attempt and reuse the identical key
// when retrying that attempt.
func (s *Service) Submit(ctx context.Context, req Request) (*Result, error) {
	if req.IdempotencyKey == "" {
		return nil, errs.ErrMissingIdempotencyKey
	}

	scope := fmt.Sprintf("transfer:%d", req.SenderID)
	decision, err := s.guard.LookupOrReserve(ctx, scope, req.IdempotencyKey)
	if err != nil {
		return nil, err
	}

	if decision.Cached != nil {
		return s.replay(decision.Cached)
	}

	token := decision.Reserved
	result, execErr := s.executor.Execute(ctx, req)

	switch {
	case execErr == nil:
		if err := s.guard.Commit(ctx, token, "completed", result.Transfer); err != nil {
			s.logger.Warn("Failed to store idempotency outcome", map[string]any{
				"sender_id": req.SenderID,
				"error":     err.Error(),
			})
		}
		return result, nil

	case isTerminalFailure(execErr):
		outcome := failedOutcome{
			Code:    errs.ErrorCode(execErr),
			Message: execErr.Error(),
		}
		if err := s.guard.Commit(ctx, token, "failed", outcome); err != nil {
			s.logger.Warn("Failed to store idempotency outcome", map[string]any{
				"sender_id": req.SenderID,
				"error":     err.Error(),
			})
		}
		return nil, execErr

	default:
		// Transient failure: release the reservation so a retry with the
		// same key can run
		if err := s.guard.Release(ctx, token); err != nil {
			s.logger.Warn("Failed to release idempotency reservation", map[string]any{
				"sender_id": req.SenderID,
				"error":     err.Error(),
			})
		}
		return nil, execErr
	}
}

// replay reconstructs the stored outcome without re-executing anything
func (s *Service) replay(cached *idempotency.StoredResult) (*Result, error) {
	if cached.Status == "completed" {
		var transfer entity.Transfer
		if err := json.Unmarshal(cached.Payload, &transfer); err != nil {
			return nil, fmt.Errorf("%w: corrupt cached transfer", errs.ErrInternalServer)
		}
		return &Result{Transfer: &transfer, Replayed: true}, nil
	}

	var outcome failedOutcome
	if err := json.Unmarshal(cached.Payload, &outcome); err != nil {
		return nil, fmt.Errorf("%w: corrupt cached outcome", errs.ErrInternalServer)
	}
	return nil, fmt.Errorf("%w: %s", errs.FromCode(outcome.Code), outcome.Message)
}

// isTerminalFailure reports whether a failure is deterministic for this
// intent: replaying it would fail identically, so the outcome is cacheable.
// Transient failures (conflicts, rail outages, infrastructure errors) are
// not terminal; the caller retries with the same key.
func isTerminalFailure(err error) bool {
	return errs.IsValidationError(err) || errs.IsInsufficientFundingError(err) || errs.IsNotFoundError(err)
}
