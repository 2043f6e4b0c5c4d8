package transfer

import (
	"testing"

	"github.com/payflow-labs/payflow/internal/domain/entity"
	errs "github.com/payflow-labs/payflow/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bank(id uint64, isDefault, verified bool, last4 string) *entity.PaymentMethod {
	return &entity.PaymentMethod{ID: id, OwnerID: 1, Kind: entity.MethodBank, IsDefault: isDefault, Verified: verified, Last4: last4}
}

func card(id uint64, verified bool, last4 string) *entity.PaymentMethod {
	return &entity.PaymentMethod{ID: id, OwnerID: 1, Kind: entity.MethodCard, Verified: verified, Last4: last4}
}

func TestFundingResolverResolve(t *testing.T) {
	resolver := NewFundingResolver()

	t.Run("Balance covers the full amount", func(t *testing.T) {
		plan, err := resolver.Resolve(1, 10000, 7500, []*entity.PaymentMethod{bank(1, true, true, "1111")})

		require.NoError(t, err)
		assert.Equal(t, int64(7500), plan.FromBalanceCents)
		assert.Equal(t, int64(0), plan.FromExternalCents)
		assert.True(t, plan.FullyFromBalance())
		assert.Equal(t, "balance", plan.Label())
	})

	t.Run("Exact balance match uses no external source", func(t *testing.T) {
		plan, err := resolver.Resolve(1, 7500, 7500, nil)

		require.NoError(t, err)
		assert.True(t, plan.FullyFromBalance())
	})

	t.Run("Remainder goes to the default verified bank account", func(t *testing.T) {
		methods := []*entity.PaymentMethod{
			card(10, true, "9999"),
			bank(11, false, true, "2222"),
			bank(12, true, true, "1111"),
		}

		plan, err := resolver.Resolve(1, 3000, 10000, methods)

		require.NoError(t, err)
		assert.Equal(t, int64(3000), plan.FromBalanceCents)
		assert.Equal(t, int64(7000), plan.FromExternalCents)
		assert.Equal(t, uint64(12), plan.ExternalSource.ID)
		assert.Equal(t, "balance + bank ****1111", plan.Label())
	})

	t.Run("No default bank falls back to any verified bank", func(t *testing.T) {
		methods := []*entity.PaymentMethod{
			card(10, true, "9999"),
			bank(11, false, true, "2222"),
			bank(12, false, true, "3333"),
		}

		plan, err := resolver.Resolve(1, 0, 5000, methods)

		require.NoError(t, err)
		assert.Equal(t, uint64(11), plan.ExternalSource.ID)
		assert.Equal(t, "bank ****2222", plan.Label())
	})

	t.Run("No bank falls back to any verified card", func(t *testing.T) {
		methods := []*entity.PaymentMethod{
			card(10, true, "9999"),
			card(11, true, "8888"),
		}

		plan, err := resolver.Resolve(1, 1000, 5000, methods)

		require.NoError(t, err)
		assert.Equal(t, uint64(10), plan.ExternalSource.ID)
		assert.Equal(t, int64(4000), plan.FromExternalCents)
		assert.Equal(t, "balance + card ****9999", plan.Label())
	})

	t.Run("Unverified methods are skipped", func(t *testing.T) {
		methods := []*entity.PaymentMethod{
			bank(11, true, false, "2222"),
			card(12, false, "9999"),
		}

		_, err := resolver.Resolve(1, 1000, 5000, methods)

		assert.ErrorIs(t, err, errs.ErrInsufficientFunding)
	})

	t.Run("No methods and no balance yields a funding error with context", func(t *testing.T) {
		_, err := resolver.Resolve(42, 2500, 10000, nil)

		require.ErrorIs(t, err, errs.ErrInsufficientFunding)

		var fundingErr *errs.FundingError
		require.ErrorAs(t, err, &fundingErr)
		assert.Equal(t, uint64(42), fundingErr.UserID)
		assert.Equal(t, int64(10000), fundingErr.RequestedCents)
		assert.Equal(t, int64(2500), fundingErr.BalanceCents)
		assert.Equal(t, 0, fundingErr.VerifiedMethods)
	})

	t.Run("Zero balance funds everything externally", func(t *testing.T) {
		plan, err := resolver.Resolve(1, 0, 5000, []*entity.PaymentMethod{bank(11, true, true, "2222")})

		require.NoError(t, err)
		assert.Equal(t, int64(0), plan.FromBalanceCents)
		assert.Equal(t, int64(5000), plan.FromExternalCents)
		assert.Equal(t, "bank ****2222", plan.Label())
	})
}
