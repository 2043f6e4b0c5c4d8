package transfer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/payflow-labs/payflow/internal/domain/entity"
	errs "github.com/payflow-labs/payflow/internal/domain/error"
	"github.com/payflow-labs/payflow/internal/domain/usecase/audit"
	mcore "github.com/payflow-labs/payflow/mocks/port/core"
	mpers "github.com/payflow-labs/payflow/mocks/port/persistence"
	mrails "github.com/payflow-labs/payflow/mocks/port/rails"
	maudit "github.com/payflow-labs/payflow/mocks/usecase/audit"
	mtransfer "github.com/payflow-labs/payflow/mocks/usecase/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type executorCtxKey string

// executorFixture bundles the executor under test with all its mocks
type executorFixture struct {
	uow          *mpers.MockUnitOfWork
	walletRepo   *mpers.MockWalletRepository
	transferRepo *mpers.MockTransferRepository
	methodRepo   *mpers.MockPaymentMethodRepository
	rails        *mrails.MockPaymentRails
	auditor      *maudit.MockRecorder
	fanout       *mtransfer.MockFanoutTrigger
	cache        *mtransfer.MockBalanceCacheInvalidator
	executor     *Executor
	txCtx        context.Context
}

func newExecutorFixture(t *testing.T) *executorFixture {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	mockTime := new(mcore.MockTimeProvider)
	mockTime.On("Now").Return(now).Maybe()

	logger := new(mcore.MockLogger)
	logger.On("Debug", mock.Anything, mock.Anything).Maybe()
	logger.On("Info", mock.Anything, mock.Anything).Maybe()
	logger.On("Warn", mock.Anything, mock.Anything).Maybe()
	logger.On("Error", mock.Anything, mock.Anything).Maybe()

	f := &executorFixture{
		uow:          new(mpers.MockUnitOfWork),
		walletRepo:   new(mpers.MockWalletRepository),
		transferRepo: new(mpers.MockTransferRepository),
		methodRepo:   new(mpers.MockPaymentMethodRepository),
		rails:        new(mrails.MockPaymentRails),
		auditor:      new(maudit.MockRecorder),
		fanout:       new(mtransfer.MockFanoutTrigger),
		cache:        new(mtransfer.MockBalanceCacheInvalidator),
		txCtx:        context.WithValue(context.Background(), executorCtxKey("tx"), "tx"),
	}
	f.executor = NewExecutor(f.uow, f.rails, f.auditor, f.fanout, f.cache, mockTime, logger)
	return f
}

// wireTransaction sets up the standard unit-of-work plumbing for one
// successful pass through the transaction
func (f *executorFixture) wireTransaction() {
	f.uow.On("GetTransferRepository", mock.Anything).Return(f.transferRepo)
	f.uow.On("GetWalletRepository", mock.Anything).Return(f.walletRepo)
	f.uow.On("GetPaymentMethodRepository", mock.Anything).Return(f.methodRepo)
	f.uow.On("Begin", mock.Anything).Return(f.txCtx, nil)
}

func validRequest() Request {
	return Request{
		SenderID:       5,
		ReceiverID:     2,
		AmountCents:    2500,
		Note:           "lunch",
		Visibility:     "friends",
		IdempotencyKey: "key-1",
	}
}

func restoredWallet(userID uint64, balanceCents int64) *entity.Wallet {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return entity.RestoreWallet(userID, balanceCents, 0, created, created, 0)
}

func TestExecutorExecuteSuccess(t *testing.T) {
	t.Run("Balance-only transfer conserves cents", func(t *testing.T) {
		f := newExecutorFixture(t)
		f.wireTransaction()

		sender := restoredWallet(5, 10000)
		receiver := restoredWallet(2, 1000)

		f.transferRepo.On("GetBySenderAndKey", mock.Anything, uint64(5), "key-1").
			Return(nil, errs.ErrTransferNotFound)

		var lockOrder []uint64
		f.walletRepo.On("GetForUpdate", mock.Anything, mock.AnythingOfType("uint64")).
			Run(func(args mock.Arguments) {
				lockOrder = append(lockOrder, args.Get(1).(uint64))
			}).
			Return(func(_ context.Context, userID uint64) *entity.Wallet {
				if userID == 5 {
					return sender
				}
				return receiver
			}, nil)

		f.methodRepo.On("ListVerifiedByOwner", mock.Anything, uint64(5)).
			Return([]*entity.PaymentMethod{}, nil)
		f.walletRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.Wallet")).Return(nil)
		f.transferRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Transfer")).Return(nil)
		f.uow.On("Commit", f.txCtx).Return(nil)

		f.cache.On("Invalidate", mock.Anything, uint64(5)).Once()
		f.cache.On("Invalidate", mock.Anything, uint64(2)).Once()

		var recorded audit.Event
		f.auditor.On("Record", mock.Anything, mock.AnythingOfType("audit.Event")).
			Run(func(args mock.Arguments) {
				recorded = args.Get(1).(audit.Event)
			}).Once()
		f.fanout.On("Trigger", mock.AnythingOfType("*entity.Transfer")).Once()

		result, err := f.executor.Execute(context.Background(), validRequest())

		require.NoError(t, err)
		assert.False(t, result.Replayed)
		assert.Equal(t, int64(2500), result.Transfer.AmountCents)
		assert.Equal(t, "balance", result.Transfer.FundingSourceLabel)

		// The 2500 cents debited equal the 2500 cents credited
		assert.Equal(t, int64(7500), sender.Balance())
		assert.Equal(t, int64(3500), receiver.Balance())

		// Locks were taken in ascending user ID order, not request order
		assert.Equal(t, []uint64{2, 5}, lockOrder)

		assert.Equal(t, entity.ActionTransferCompleted, recorded.Action)
		assert.Equal(t, entity.OutcomeSuccess, recorded.Outcome)

		f.uow.AssertNotCalled(t, "Rollback", mock.Anything)
		f.cache.AssertExpectations(t)
		f.fanout.AssertExpectations(t)
		f.auditor.AssertExpectations(t)
	})

	t.Run("Split funding collects only the remainder on the rails", func(t *testing.T) {
		f := newExecutorFixture(t)
		f.wireTransaction()

		sender := restoredWallet(5, 1000)
		receiver := restoredWallet(2, 0)
		defaultBank := &entity.PaymentMethod{ID: 7, OwnerID: 5, Kind: entity.MethodBank, IsDefault: true, Verified: true, Last4: "1234"}

		f.transferRepo.On("GetBySenderAndKey", mock.Anything, uint64(5), "key-1").
			Return(nil, errs.ErrTransferNotFound)
		f.walletRepo.On("GetForUpdate", mock.Anything, uint64(2)).Return(receiver, nil)
		f.walletRepo.On("GetForUpdate", mock.Anything, uint64(5)).Return(sender, nil)
		f.methodRepo.On("ListVerifiedByOwner", mock.Anything, uint64(5)).
			Return([]*entity.PaymentMethod{defaultBank}, nil)

		f.rails.On("Collect", mock.Anything, defaultBank, int64(1500)).Return("rail-ref-1", nil).Once()

		f.walletRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.Wallet")).Return(nil)
		f.transferRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Transfer")).Return(nil)
		f.uow.On("Commit", f.txCtx).Return(nil)

		f.cache.On("Invalidate", mock.Anything, mock.AnythingOfType("uint64")).Maybe()
		f.auditor.On("Record", mock.Anything, mock.AnythingOfType("audit.Event")).Maybe()
		f.fanout.On("Trigger", mock.AnythingOfType("*entity.Transfer")).Maybe()

		result, err := f.executor.Execute(context.Background(), validRequest())

		require.NoError(t, err)
		assert.Equal(t, "balance + bank ****1234", result.Transfer.FundingSourceLabel)

		// Only the balance portion left the ledger; the receiver got the full amount
		assert.Equal(t, int64(0), sender.Balance())
		assert.Equal(t, int64(2500), receiver.Balance())
		f.rails.AssertExpectations(t)
	})
}

func TestExecutorExecuteIdempotency(t *testing.T) {
	t.Run("Pre-check replay skips the transaction entirely", func(t *testing.T) {
		f := newExecutorFixture(t)

		existing := &entity.Transfer{ID: "tr-existing", SenderID: 5, ReceiverID: 2, AmountCents: 2500}
		f.uow.On("GetTransferRepository", mock.Anything).Return(f.transferRepo)
		f.transferRepo.On("GetBySenderAndKey", mock.Anything, uint64(5), "key-1").
			Return(existing, nil)

		result, err := f.executor.Execute(context.Background(), validRequest())

		require.NoError(t, err)
		assert.True(t, result.Replayed)
		assert.Equal(t, "tr-existing", result.Transfer.ID)

		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
		f.auditor.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
		f.fanout.AssertNotCalled(t, "Trigger", mock.Anything)
		f.cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	})

	t.Run("In-transaction replay fires no side effects", func(t *testing.T) {
		f := newExecutorFixture(t)
		f.wireTransaction()

		existing := &entity.Transfer{ID: "tr-existing", SenderID: 5, ReceiverID: 2, AmountCents: 2500}
		sender := restoredWallet(5, 10000)
		receiver := restoredWallet(2, 1000)

		// The pre-check misses, then a concurrent writer lands the row
		// before our locks are taken
		f.transferRepo.On("GetBySenderAndKey", mock.Anything, uint64(5), "key-1").
			Return(nil, errs.ErrTransferNotFound).Once()
		f.transferRepo.On("GetBySenderAndKey", mock.Anything, uint64(5), "key-1").
			Return(existing, nil).Once()

		f.walletRepo.On("GetForUpdate", mock.Anything, uint64(2)).Return(receiver, nil)
		f.walletRepo.On("GetForUpdate", mock.Anything, uint64(5)).Return(sender, nil)
		f.uow.On("Rollback", f.txCtx).Return(nil)

		result, err := f.executor.Execute(context.Background(), validRequest())

		require.NoError(t, err)
		assert.True(t, result.Replayed)
		assert.Equal(t, int64(10000), sender.Balance())

		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
		f.auditor.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
		f.fanout.AssertNotCalled(t, "Trigger", mock.Anything)
	})

	t.Run("Losing the unique index race maps to a concurrency conflict", func(t *testing.T) {
		f := newExecutorFixture(t)
		f.wireTransaction()

		sender := restoredWallet(5, 10000)
		receiver := restoredWallet(2, 1000)

		f.transferRepo.On("GetBySenderAndKey", mock.Anything, uint64(5), "key-1").
			Return(nil, errs.ErrTransferNotFound)
		f.walletRepo.On("GetForUpdate", mock.Anything, uint64(2)).Return(receiver, nil)
		f.walletRepo.On("GetForUpdate", mock.Anything, uint64(5)).Return(sender, nil)
		f.methodRepo.On("ListVerifiedByOwner", mock.Anything, uint64(5)).
			Return([]*entity.PaymentMethod{}, nil)
		f.walletRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.Wallet")).Return(nil)
		f.transferRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Transfer")).
			Return(errs.ErrDuplicateTransfer)
		f.uow.On("Rollback", f.txCtx).Return(nil)
		f.auditor.On("Record", mock.Anything, mock.AnythingOfType("audit.Event")).Once()

		_, err := f.executor.Execute(context.Background(), validRequest())

		assert.ErrorIs(t, err, errs.ErrConcurrencyConflict)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}

func TestExecutorExecuteFailures(t *testing.T) {
	t.Run("Validation failure audits once and touches nothing", func(t *testing.T) {
		f := newExecutorFixture(t)

		var recorded audit.Event
		f.auditor.On("Record", mock.Anything, mock.AnythingOfType("audit.Event")).
			Run(func(args mock.Arguments) {
				recorded = args.Get(1).(audit.Event)
			}).Once()

		req := validRequest()
		req.ReceiverID = req.SenderID

		_, err := f.executor.Execute(context.Background(), req)

		assert.ErrorIs(t, err, errs.ErrSelfTransfer)
		assert.Equal(t, entity.ActionTransferFailed, recorded.Action)
		assert.Equal(t, entity.OutcomeFailure, recorded.Outcome)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
		f.auditor.AssertExpectations(t)
	})

	t.Run("Rail failure rolls the whole transfer back", func(t *testing.T) {
		f := newExecutorFixture(t)
		f.wireTransaction()

		sender := restoredWallet(5, 1000)
		receiver := restoredWallet(2, 0)
		defaultBank := &entity.PaymentMethod{ID: 7, OwnerID: 5, Kind: entity.MethodBank, IsDefault: true, Verified: true, Last4: "1234"}

		f.transferRepo.On("GetBySenderAndKey", mock.Anything, uint64(5), "key-1").
			Return(nil, errs.ErrTransferNotFound)
		f.walletRepo.On("GetForUpdate", mock.Anything, uint64(2)).Return(receiver, nil)
		f.walletRepo.On("GetForUpdate", mock.Anything, uint64(5)).Return(sender, nil)
		f.methodRepo.On("ListVerifiedByOwner", mock.Anything, uint64(5)).
			Return([]*entity.PaymentMethod{defaultBank}, nil)
		f.rails.On("Collect", mock.Anything, defaultBank, int64(1500)).
			Return("", errs.ErrExternalService)
		f.uow.On("Rollback", f.txCtx).Return(nil)
		f.auditor.On("Record", mock.Anything, mock.AnythingOfType("audit.Event")).Once()

		_, err := f.executor.Execute(context.Background(), validRequest())

		assert.ErrorIs(t, err, errs.ErrExternalService)
		assert.Equal(t, int64(1000), sender.Balance())
		assert.Equal(t, int64(0), receiver.Balance())

		f.walletRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		f.transferRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.fanout.AssertNotCalled(t, "Trigger", mock.Anything)
		f.uow.AssertCalled(t, "Rollback", f.txCtx)
	})

	t.Run("Insufficient funding surfaces the funding error", func(t *testing.T) {
		f := newExecutorFixture(t)
		f.wireTransaction()

		sender := restoredWallet(5, 100)
		receiver := restoredWallet(2, 0)

		f.transferRepo.On("GetBySenderAndKey", mock.Anything, uint64(5), "key-1").
			Return(nil, errs.ErrTransferNotFound)
		f.walletRepo.On("GetForUpdate", mock.Anything, uint64(2)).Return(receiver, nil)
		f.walletRepo.On("GetForUpdate", mock.Anything, uint64(5)).Return(sender, nil)
		f.methodRepo.On("ListVerifiedByOwner", mock.Anything, uint64(5)).
			Return([]*entity.PaymentMethod{}, nil)
		f.uow.On("Rollback", f.txCtx).Return(nil)
		f.auditor.On("Record", mock.Anything, mock.AnythingOfType("audit.Event")).Once()

		_, err := f.executor.Execute(context.Background(), validRequest())

		assert.ErrorIs(t, err, errs.ErrInsufficientFunding)
		assert.Equal(t, int64(100), sender.Balance())
	})

	t.Run("Missing sender wallet", func(t *testing.T) {
		f := newExecutorFixture(t)
		f.wireTransaction()

		f.transferRepo.On("GetBySenderAndKey", mock.Anything, uint64(5), "key-1").
			Return(nil, errs.ErrTransferNotFound)
		f.walletRepo.On("GetForUpdate", mock.Anything, uint64(2)).
			Return(nil, errs.ErrWalletNotFound)
		f.uow.On("Rollback", f.txCtx).Return(nil)
		f.auditor.On("Record", mock.Anything, mock.AnythingOfType("audit.Event")).Once()

		_, err := f.executor.Execute(context.Background(), validRequest())

		assert.ErrorIs(t, err, errs.ErrWalletNotFound)
	})

	t.Run("Commit failure propagates", func(t *testing.T) {
		f := newExecutorFixture(t)
		f.wireTransaction()

		sender := restoredWallet(5, 10000)
		receiver := restoredWallet(2, 1000)

		f.transferRepo.On("GetBySenderAndKey", mock.Anything, uint64(5), "key-1").
			Return(nil, errs.ErrTransferNotFound)
		f.walletRepo.On("GetForUpdate", mock.Anything, uint64(2)).Return(receiver, nil)
		f.walletRepo.On("GetForUpdate", mock.Anything, uint64(5)).Return(sender, nil)
		f.methodRepo.On("ListVerifiedByOwner", mock.Anything, uint64(5)).
			Return([]*entity.PaymentMethod{}, nil)
		f.walletRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.Wallet")).Return(nil)
		f.transferRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Transfer")).Return(nil)
		f.uow.On("Commit", f.txCtx).Return(errors.New("connection reset"))
		f.uow.On("Rollback", f.txCtx).Return(nil)
		f.auditor.On("Record", mock.Anything, mock.AnythingOfType("audit.Event")).Once()

		_, err := f.executor.Execute(context.Background(), validRequest())

		assert.Error(t, err)
		f.fanout.AssertNotCalled(t, "Trigger", mock.Anything)
		f.cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	})
}
