package transfer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/payflow-labs/payflow/internal/domain/entity"
	errs "github.com/payflow-labs/payflow/internal/domain/error"
	coreport "github.com/payflow-labs/payflow/internal/domain/port/core"
	"github.com/payflow-labs/payflow/internal/domain/port/persistence"
	railsport "github.com/payflow-labs/payflow/internal/domain/port/rails"
	"github.com/payflow-labs/payflow/internal/domain/usecase/audit"
)

// FanoutTrigger propagates a committed transfer to feed recipients. It runs
// after commit, asynchronously, and must never fail the transfer.
type FanoutTrigger interface {
	Trigger(transfer *entity.Transfer)
}

// BalanceCacheInvalidator drops cached balances after a committed mutation
type BalanceCacheInvalidator interface {
	Invalidate(ctx context.Context, userID uint64)
}

// Request is one transfer intent
type Request struct {
	SenderID       uint64
	ReceiverID     uint64
	AmountCents    int64
	Note           string
	Visibility     string
	IdempotencyKey string
	Requester      entity.RequestContext
}

// Result is the outcome of executing a transfer. Replayed marks an
// idempotency hit: the transfer existed before this request, so no side
// effects fired again.
type Result struct {
	Transfer *entity.Transfer
	Replayed bool
}

// Executor orchestrates one atomic transfer: wallet locks in canonical
// order, funding resolution, ledger deltas and the transfer row, all inside
// a single unit of work. Audit, cache invalidation and feed fan-out run
// strictly after commit.
type Executor struct {
	uow          persistence.UnitOfWork
	resolver     *FundingResolver
	validator    *Validator
	rails        railsport.PaymentRails
	auditor      audit.Recorder
	fanout       FanoutTrigger
	balanceCache BalanceCacheInvalidator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewExecutor wires the transfer executor. fanout and balanceCache may be
// nil in contexts that have no feed or cache (tests, batch tools).
func NewExecutor(
	uow persistence.UnitOfWork,
	rails railsport.PaymentRails,
	auditor audit.Recorder,
	fanout FanoutTrigger,
	balanceCache BalanceCacheInvalidator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Executor {
	return &Executor{
		uow:          uow,
		resolver:     NewFundingResolver(),
		validator:    NewValidator(),
		rails:        rails,
		auditor:      auditor,
		fanout:       fanout,
		balanceCache: balanceCache,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute runs one transfer intent to completion. Failure paths roll back
// the unit of work entirely; no partial debit or credit is ever observable.
func (e *Executor) Execute(ctx context.Context, req Request) (*Result, error) {
	// Validation happens before any lock is acquired
	if err := e.validator.Validate(req.SenderID, req.ReceiverID, req.AmountCents, req.Visibility, req.Note); err != nil {
		e.auditFailure(ctx, req, err)
		return nil, err
	}

	// Durable idempotency pre-check outside the transaction: duplicate
	// requests return early without taking wallet locks
	if req.IdempotencyKey != "" {
		existing, err := e.uow.GetTransferRepository(ctx).GetBySenderAndKey(ctx, req.SenderID, req.IdempotencyKey)
		if err == nil {
			e.logger.Info("Duplicate transfer intent, returning prior result", map[string]any{
				"transfer_id": existing.ID,
				"sender_id":   req.SenderID,
			})
			return &Result{Transfer: existing, Replayed: true}, nil
		}
		if !errors.Is(err, errs.ErrTransferNotFound) {
			return nil, fmt.Errorf("idempotency pre-check failed: %w", err)
		}
	}

	result, err := e.executeInTransaction(ctx, req)
	if err != nil {
		e.auditFailure(ctx, req, err)
		return nil, err
	}

	if !result.Replayed {
		e.afterCommit(ctx, req, result.Transfer)
	}
	return result, nil
}

func (e *Executor) executeInTransaction(ctx context.Context, req Request) (*Result, error) {
	txCtx, err := e.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transfer transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := e.uow.Rollback(txCtx); rbErr != nil {
				e.logger.Error("Failed to roll back transfer transaction", map[string]any{
					"error": rbErr.Error(),
				})
			}
		}
	}()

	walletRepo := e.uow.GetWalletRepository(txCtx)
	transferRepo := e.uow.GetTransferRepository(txCtx)

	// Wallet rows lock in canonical order (ascending user ID), independent
	// of sender/receiver role. Two opposite-direction transfers between the
	// same pair can no longer deadlock on each other.
	senderWallet, receiverWallet, err := e.lockWallets(txCtx, walletRepo, req.SenderID, req.ReceiverID)
	if err != nil {
		return nil, err
	}

	// Second, in-transaction idempotency layer closes the race left open by
	// the pre-check
	if req.IdempotencyKey != "" {
		existing, lookupErr := transferRepo.GetBySenderAndKey(txCtx, req.SenderID, req.IdempotencyKey)
		if lookupErr == nil {
			return &Result{Transfer: existing, Replayed: true}, nil
		}
		if !errors.Is(lookupErr, errs.ErrTransferNotFound) {
			return nil, fmt.Errorf("idempotency check failed: %w", lookupErr)
		}
	}

	methods, err := e.uow.GetPaymentMethodRepository(txCtx).ListVerifiedByOwner(txCtx, req.SenderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment methods: %w", err)
	}

	plan, err := e.resolver.Resolve(req.SenderID, senderWallet.Balance(), req.AmountCents, methods)
	if err != nil {
		return nil, err
	}

	// The external portion is collected on the rails before any ledger
	// delta is applied; a rail failure rolls the whole transfer back.
	// Settlement itself completes out-of-band.
	if plan.FromExternalCents > 0 {
		railRef, railErr := e.rails.Collect(ctx, plan.ExternalSource, plan.FromExternalCents)
		if railErr != nil {
			return nil, fmt.Errorf("external funding failed: %w", railErr)
		}
		e.logger.Debug("External funding collected", map[string]any{
			"rail_reference": railRef,
			"amount_cents":   plan.FromExternalCents,
			"source":         plan.ExternalSource.Label(),
		})
	}

	// Only the balance portion is debited from the ledger
	if err := senderWallet.Debit(plan.FromBalanceCents, e.timeProvider); err != nil {
		return nil, err
	}
	if err := receiverWallet.Credit(req.AmountCents, e.timeProvider); err != nil {
		return nil, err
	}

	if err := walletRepo.Update(txCtx, senderWallet); err != nil {
		return nil, fmt.Errorf("failed to persist sender debit: %w", err)
	}
	if err := walletRepo.Update(txCtx, receiverWallet); err != nil {
		return nil, fmt.Errorf("failed to persist receiver credit: %w", err)
	}

	transfer, err := entity.NewTransfer(
		uuid.New().String(),
		req.SenderID,
		req.ReceiverID,
		req.AmountCents,
		req.Note,
		entity.Visibility(req.Visibility),
		plan.Label(),
		req.IdempotencyKey,
		e.timeProvider,
	)
	if err != nil {
		return nil, err
	}

	if err := transferRepo.Create(txCtx, transfer); err != nil {
		if errors.Is(err, errs.ErrDuplicateTransfer) {
			// A concurrent request with the same key won the unique index;
			// surface as a conflict so the caller retries and hits the replay path
			return nil, fmt.Errorf("%w: %s", errs.ErrConcurrencyConflict, err.Error())
		}
		return nil, fmt.Errorf("failed to persist transfer: %w", err)
	}

	if err := e.uow.Commit(txCtx); err != nil {
		return nil, fmt.Errorf("failed to commit transfer: %w", err)
	}
	committed = true

	e.logger.Info("Transfer committed", map[string]any{
		"transfer_id":  transfer.ID,
		"sender_id":    transfer.SenderID,
		"receiver_id":  transfer.ReceiverID,
		"amount_cents": transfer.AmountCents,
		"funding":      transfer.FundingSourceLabel,
	})

	return &Result{Transfer: transfer}, nil
}

// lockWallets acquires both wallet row locks in ascending user ID order and
// returns them as (sender, receiver)
func (e *Executor) lockWallets(
	txCtx context.Context,
	walletRepo persistence.WalletRepository,
	senderID, receiverID uint64,
) (*entity.Wallet, *entity.Wallet, error) {
	firstID, secondID := senderID, receiverID
	if receiverID < senderID {
		firstID, secondID = receiverID, senderID
	}

	first, err := walletRepo.GetForUpdate(txCtx, firstID)
	if err != nil {
		return nil, nil, walletLockError(err, firstID)
	}
	second, err := walletRepo.GetForUpdate(txCtx, secondID)
	if err != nil {
		return nil, nil, walletLockError(err, secondID)
	}

	if first.UserID == senderID {
		return first, second, nil
	}
	return second, first, nil
}

func walletLockError(err error, userID uint64) error {
	if errors.Is(err, errs.ErrWalletNotFound) {
		return fmt.Errorf("%w: user %d", errs.ErrWalletNotFound, userID)
	}
	return fmt.Errorf("failed to lock wallet %d: %w", userID, err)
}

// afterCommit runs the post-commit side effects: cache invalidation, the
// success audit entry, and asynchronous feed fan-out
func (e *Executor) afterCommit(ctx context.Context, req Request, transfer *entity.Transfer) {
	if e.balanceCache != nil {
		e.balanceCache.Invalidate(ctx, transfer.SenderID)
		e.balanceCache.Invalidate(ctx, transfer.ReceiverID)
	}

	e.auditor.Record(ctx, audit.Event{
		ActorID:      transfer.SenderID,
		ActorType:    entity.ActorUser,
		Action:       entity.ActionTransferCompleted,
		ResourceType: "transfer",
		ResourceID:   transfer.ID,
		Outcome:      entity.OutcomeSuccess,
		Details: map[string]any{
			"receiver_id":    transfer.ReceiverID,
			"amount_cents":   transfer.AmountCents,
			"funding_source": transfer.FundingSourceLabel,
			"visibility":     string(transfer.Visibility),
		},
		Request: req.Requester,
	})

	if e.fanout != nil {
		e.fanout.Trigger(transfer)
	}
}

// auditFailure writes the failure audit entry for any error path. Exactly
// one entry is written per failed intent.
func (e *Executor) auditFailure(ctx context.Context, req Request, cause error) {
	e.auditor.Record(ctx, audit.Event{
		ActorID:      req.SenderID,
		ActorType:    entity.ActorUser,
		Action:       entity.ActionTransferFailed,
		ResourceType: "transfer",
		Outcome:      entity.OutcomeFailure,
		Details: map[string]any{
			"receiver_id":  req.ReceiverID,
			"amount_cents": req.AmountCents,
			"error":        cause.Error(),
			"error_code":   errs.ErrorCode(cause),
		},
		Request: req.Requester,
	})
}
