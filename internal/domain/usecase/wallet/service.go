package wallet

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/payflow-labs/payflow/internal/domain/entity"
	errs "github.com/payflow-labs/payflow/internal/domain/error"
	coreport "github.com/payflow-labs/payflow/internal/domain/port/core"
	"github.com/payflow-labs/payflow/internal/domain/port/persistence"
	railsport "github.com/payflow-labs/payflow/internal/domain/port/rails"
	"github.com/payflow-labs/payflow/internal/domain/usecase/audit"
)

// Service owns the non-transfer wallet mutations: deposits from an external
// source into the balance, and cashouts from the balance to a linked bank
// account. Both run under the wallet row lock and are audit-logged.
type Service struct {
	uow          persistence.UnitOfWork
	wallets      persistence.WalletRepository
	methods      persistence.PaymentMethodRepository
	rails        railsport.PaymentRails
	auditor      audit.Recorder
	balanceCache *BalanceCache
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates the wallet service
func NewService(
	uow persistence.UnitOfWork,
	wallets persistence.WalletRepository,
	methods persistence.PaymentMethodRepository,
	rails railsport.PaymentRails,
	auditor audit.Recorder,
	balanceCache *BalanceCache,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		wallets:      wallets,
		methods:      methods,
		rails:        rails,
		auditor:      auditor,
		balanceCache: balanceCache,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetBalance returns the user's balance in cents, reading through the cache
func (s *Service) GetBalance(ctx context.Context, userID uint64) (int64, error) {
	if cents, ok := s.balanceCache.Get(ctx, userID); ok {
		return cents, nil
	}

	w, err := s.wallets.GetByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}

	s.balanceCache.Put(ctx, userID, w.Balance())
	return w.Balance(), nil
}

// Deposit collects amountCents from the user's default verified bank account
// and credits the wallet balance
func (s *Service) Deposit(ctx context.Context, userID uint64, amountCents int64, reqCtx entity.RequestContext) (*entity.Wallet, error) {
	if amountCents <= 0 {
		return nil, errs.ErrInvalidAmount
	}

	source, err := s.defaultBankAccount(ctx, userID)
	if err != nil {
		s.auditWalletOp(ctx, userID, entity.ActionDepositFailed, entity.OutcomeFailure, amountCents, err, reqCtx)
		return nil, err
	}

	railRef, err := s.rails.Collect(ctx, source, amountCents)
	if err != nil {
		s.auditWalletOp(ctx, userID, entity.ActionDepositFailed, entity.OutcomeFailure, amountCents, err, reqCtx)
		return nil, fmt.Errorf("deposit collection failed: %w", err)
	}

	w, err := s.applyUnderLock(ctx, userID, func(w *entity.Wallet) error {
		return w.Credit(amountCents, s.timeProvider)
	})
	if err != nil {
		// The rail already collected; the failure entry carries the rail
		// reference so operators can reconcile the stranded funds
		s.auditStrandedDeposit(ctx, userID, amountCents, railRef, err, reqCtx)
		return nil, err
	}

	s.balanceCache.Invalidate(ctx, userID)
	s.auditWalletOp(ctx, userID, entity.ActionDepositCompleted, entity.OutcomeSuccess, amountCents, nil, reqCtx)
	return w, nil
}

// Cashout debits the wallet balance and pays it out to the user's default
// verified bank account, recording a cashout row for the retention pipeline
func (s *Service) Cashout(ctx context.Context, userID uint64, amountCents int64, reqCtx entity.RequestContext) (*entity.Cashout, error) {
	if amountCents <= 0 {
		return nil, errs.ErrInvalidAmount
	}

	destination, err := s.defaultBankAccount(ctx, userID)
	if err != nil {
		s.auditWalletOp(ctx, userID, entity.ActionCashoutFailed, entity.OutcomeFailure, amountCents, err, reqCtx)
		return nil, err
	}

	var cashout *entity.Cashout
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin cashout transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
				s.logger.Error("Failed to roll back cashout", map[string]any{"error": rbErr.Error()})
			}
		}
	}()

	walletRepo := s.uow.GetWalletRepository(txCtx)
	w, err := walletRepo.GetForUpdate(txCtx, userID)
	if err != nil {
		s.auditWalletOp(ctx, userID, entity.ActionCashoutFailed, entity.OutcomeFailure, amountCents, err, reqCtx)
		return nil, err
	}

	if err := w.Debit(amountCents, s.timeProvider); err != nil {
		s.auditWalletOp(ctx, userID, entity.ActionCashoutFailed, entity.OutcomeFailure, amountCents, err, reqCtx)
		return nil, err
	}

	// The payout runs inside the same unit of work so a rail failure
	// restores the balance on rollback
	if _, err := s.rails.Payout(ctx, destination, amountCents); err != nil {
		s.auditWalletOp(ctx, userID, entity.ActionCashoutFailed, entity.OutcomeFailure, amountCents, err, reqCtx)
		return nil, fmt.Errorf("cashout payout failed: %w", err)
	}

	if err := walletRepo.Update(txCtx, w); err != nil {
		s.auditWalletOp(ctx, userID, entity.ActionCashoutFailed, entity.OutcomeFailure, amountCents, err, reqCtx)
		return nil, fmt.Errorf("failed to persist cashout debit: %w", err)
	}

	cashout = &entity.Cashout{
		ID:               uuid.New().String(),
		UserID:           userID,
		AmountCents:      amountCents,
		DestinationLabel: destination.Label(),
		Status:           entity.CashoutCompleted,
		CreatedAt:        s.timeProvider.Now(),
		Tier:             entity.TierHot,
	}
	if err := s.uow.GetCashoutRepository(txCtx).Create(txCtx, cashout); err != nil {
		return nil, fmt.Errorf("failed to persist cashout: %w", err)
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, fmt.Errorf("failed to commit cashout: %w", err)
	}
	committed = true

	s.balanceCache.Invalidate(ctx, userID)
	s.auditWalletOp(ctx, userID, entity.ActionCashoutCompleted, entity.OutcomeSuccess, amountCents, nil, reqCtx)
	return cashout, nil
}

// defaultBankAccount picks the user's default verified bank account, falling
// back to any verified bank account
func (s *Service) defaultBankAccount(ctx context.Context, userID uint64) (*entity.PaymentMethod, error) {
	methods, err := s.methods.ListVerifiedByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment methods: %w", err)
	}

	var anyBank *entity.PaymentMethod
	for _, m := range methods {
		if m.Kind != entity.MethodBank || !m.Usable() {
			continue
		}
		if m.IsDefault {
			return m, nil
		}
		if anyBank == nil {
			anyBank = m
		}
	}
	if anyBank != nil {
		return anyBank, nil
	}

	return nil, errs.NewFundingError(userID, 0, 0, len(methods))
}

// applyUnderLock mutates one wallet inside its own unit of work
func (s *Service) applyUnderLock(ctx context.Context, userID uint64, mutate func(*entity.Wallet) error) (*entity.Wallet, error) {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin wallet transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
				s.logger.Error("Failed to roll back wallet mutation", map[string]any{"error": rbErr.Error()})
			}
		}
	}()

	walletRepo := s.uow.GetWalletRepository(txCtx)
	w, err := walletRepo.GetForUpdate(txCtx, userID)
	if err != nil {
		return nil, err
	}

	if err := mutate(w); err != nil {
		return nil, err
	}

	if err := walletRepo.Update(txCtx, w); err != nil {
		return nil, fmt.Errorf("failed to persist wallet: %w", err)
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, fmt.Errorf("failed to commit wallet mutation: %w", err)
	}
	committed = true

	return w, nil
}

// auditStrandedDeposit records a deposit whose external collection succeeded
// but whose balance credit failed. These entries require operator
// reconciliation against the rail reference.
func (s *Service) auditStrandedDeposit(ctx context.Context, userID uint64, amountCents int64, railRef string, cause error, reqCtx entity.RequestContext) {
	s.logger.Error("Deposit collected but not credited", map[string]any{
		"user_id":        userID,
		"amount_cents":   amountCents,
		"rail_reference": railRef,
		"error":          cause.Error(),
	})

	s.auditor.Record(ctx, audit.Event{
		ActorID:      userID,
		ActorType:    entity.ActorUser,
		Action:       entity.ActionDepositFailed,
		ResourceType: "wallet",
		ResourceID:   fmt.Sprintf("%d", userID),
		Outcome:      entity.OutcomeFailure,
		Details: map[string]any{
			"amount_cents":            amountCents,
			"error":                   cause.Error(),
			"error_code":              errs.ErrorCode(cause),
			"rail_reference":          railRef,
			"requires_reconciliation": true,
		},
		Request: reqCtx,
	})
}

func (s *Service) auditWalletOp(ctx context.Context, userID uint64, action, outcome string, amountCents int64, cause error, reqCtx entity.RequestContext) {
	details := map[string]any{
		"amount_cents": amountCents,
	}
	if cause != nil {
		details["error"] = cause.Error()
		details["error_code"] = errs.ErrorCode(cause)
	}

	s.auditor.Record(ctx, audit.Event{
		ActorID:      userID,
		ActorType:    entity.ActorUser,
		Action:       action,
		ResourceType: "wallet",
		ResourceID:   fmt.Sprintf("%d", userID),
		Outcome:      outcome,
		Details:      details,
		Request:      reqCtx,
	})
}
