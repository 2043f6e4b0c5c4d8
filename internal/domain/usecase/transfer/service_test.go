package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/payflow-labs/payflow/internal/domain/entity"
	errs "github.com/payflow-labs/payflow/internal/domain/error"
	"github.com/payflow-labs/payflow/internal/domain/usecase/idempotency"
	mcache "github.com/payflow-labs/payflow/mocks/port/cache"
	mcore "github.com/payflow-labs/payflow/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	serviceResultKey = "idem:result:transfer:5:key-1"
	serviceLockKey   = "idem:lock:transfer:5:key-1"
)

func quietLogger() *mcore.MockLogger {
	logger := new(mcore.MockLogger)
	logger.On("Debug", mock.Anything, mock.Anything).Maybe()
	logger.On("Info", mock.Anything, mock.Anything).Maybe()
	logger.On("Warn", mock.Anything, mock.Anything).Maybe()
	logger.On("Error", mock.Anything, mock.Anything).Maybe()
	return logger
}

func storedResultJSON(t *testing.T, status string, payload any) string {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	stored, err := json.Marshal(idempotency.StoredResult{Status: status, Payload: body})
	require.NoError(t, err)
	return string(stored)
}

func TestServiceSubmitReplay(t *testing.T) {
	t.Run("Missing idempotency key is rejected up front", func(t *testing.T) {
		f := newExecutorFixture(t)
		cache := new(mcache.MockKeyValueCache)
		service := NewService(f.executor, idempotency.NewGuard(cache, quietLogger()), quietLogger())

		req := validRequest()
		req.IdempotencyKey = ""

		_, err := service.Submit(context.Background(), req)

		assert.ErrorIs(t, err, errs.ErrMissingIdempotencyKey)
		cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("Cached success replays without executing", func(t *testing.T) {
		f := newExecutorFixture(t)
		cache := new(mcache.MockKeyValueCache)
		service := NewService(f.executor, idempotency.NewGuard(cache, quietLogger()), quietLogger())

		prior := &entity.Transfer{ID: "tr-cached", SenderID: 5, ReceiverID: 2, AmountCents: 2500, Status: entity.TransferCompleted}
		cache.On("Get", mock.Anything, serviceResultKey).
			Return(storedResultJSON(t, "completed", prior), true, nil)

		result, err := service.Submit(context.Background(), validRequest())

		require.NoError(t, err)
		assert.True(t, result.Replayed)
		assert.Equal(t, "tr-cached", result.Transfer.ID)
		assert.Equal(t, int64(2500), result.Transfer.AmountCents)

		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
		cache.AssertNotCalled(t, "SetNX", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Cached business failure replays the same error", func(t *testing.T) {
		f := newExecutorFixture(t)
		cache := new(mcache.MockKeyValueCache)
		service := NewService(f.executor, idempotency.NewGuard(cache, quietLogger()), quietLogger())

		outcome := failedOutcome{Code: errs.CodeInsufficientFunding, Message: "insufficient funding"}
		cache.On("Get", mock.Anything, serviceResultKey).
			Return(storedResultJSON(t, "failed", outcome), true, nil)

		_, err := service.Submit(context.Background(), validRequest())

		assert.ErrorIs(t, err, errs.ErrInsufficientFunding)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("In-flight duplicate surfaces as an idempotency conflict", func(t *testing.T) {
		f := newExecutorFixture(t)
		cache := new(mcache.MockKeyValueCache)
		service := NewService(f.executor, idempotency.NewGuard(cache, quietLogger()), quietLogger())

		cache.On("Get", mock.Anything, serviceResultKey).Return("", false, nil)
		cache.On("SetNX", mock.Anything, serviceLockKey, "1", idempotency.LockTTL).
			Return(false, nil)

		_, err := service.Submit(context.Background(), validRequest())

		assert.ErrorIs(t, err, errs.ErrIdempotencyConflict)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})
}

func TestServiceSubmitExecution(t *testing.T) {
	// wireSuccess prepares the executor mocks for one committed transfer
	wireSuccess := func(f *executorFixture) {
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
		f.uow.On("Commit", f.txCtx).Return(nil)
		f.cache.On("Invalidate", mock.Anything, mock.AnythingOfType("uint64")).Maybe()
		f.auditor.On("Record", mock.Anything, mock.AnythingOfType("audit.Event")).Maybe()
		f.fanout.On("Trigger", mock.AnythingOfType("*entity.Transfer")).Maybe()
	}

	t.Run("Successful execution stores the outcome and releases the lock", func(t *testing.T) {
		f := newExecutorFixture(t)
		wireSuccess(f)

		cache := new(mcache.MockKeyValueCache)
		cache.On("Get", mock.Anything, serviceResultKey).Return("", false, nil)
		cache.On("SetNX", mock.Anything, serviceLockKey, "1", idempotency.LockTTL).Return(true, nil)
		cache.On("Set", mock.Anything, serviceResultKey, mock.AnythingOfType("string"), idempotency.ResultTTL).
			Return(nil).Once()
		cache.On("Delete", mock.Anything, serviceLockKey).Return(nil).Once()

		service := NewService(f.executor, idempotency.NewGuard(cache, quietLogger()), quietLogger())

		result, err := service.Submit(context.Background(), validRequest())

		require.NoError(t, err)
		assert.False(t, result.Replayed)
		cache.AssertExpectations(t)
	})

	t.Run("Terminal business failure is cached for replay", func(t *testing.T) {
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
		f.auditor.On("Record", mock.Anything, mock.AnythingOfType("audit.Event")).Maybe()

		cache := new(mcache.MockKeyValueCache)
		cache.On("Get", mock.Anything, serviceResultKey).Return("", false, nil)
		cache.On("SetNX", mock.Anything, serviceLockKey, "1", idempotency.LockTTL).Return(true, nil)

		var storedOutcome string
		cache.On("Set", mock.Anything, serviceResultKey, mock.AnythingOfType("string"), idempotency.ResultTTL).
			Run(func(args mock.Arguments) {
				storedOutcome = args.Get(2).(string)
			}).Return(nil).Once()
		cache.On("Delete", mock.Anything, serviceLockKey).Return(nil).Once()

		service := NewService(f.executor, idempotency.NewGuard(cache, quietLogger()), quietLogger())

		_, err := service.Submit(context.Background(), validRequest())

		assert.ErrorIs(t, err, errs.ErrInsufficientFunding)
		assert.Contains(t, storedOutcome, `"status":"failed"`)
		cache.AssertExpectations(t)
	})

	t.Run("Transient failure releases the reservation without caching", func(t *testing.T) {
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
		f.uow.On("Commit", f.txCtx).Return(errors.New("server closed the connection"))
		f.uow.On("Rollback", f.txCtx).Return(nil)
		f.auditor.On("Record", mock.Anything, mock.AnythingOfType("audit.Event")).Maybe()

		cache := new(mcache.MockKeyValueCache)
		cache.On("Get", mock.Anything, serviceResultKey).Return("", false, nil)
		cache.On("SetNX", mock.Anything, serviceLockKey, "1", idempotency.LockTTL).Return(true, nil)
		cache.On("Delete", mock.Anything, serviceLockKey).Return(nil).Once()

		service := NewService(f.executor, idempotency.NewGuard(cache, quietLogger()), quietLogger())

		_, err := service.Submit(context.Background(), validRequest())

		assert.Error(t, err)
		cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		cache.AssertExpectations(t)
	})
}
