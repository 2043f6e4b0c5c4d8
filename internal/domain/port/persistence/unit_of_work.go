package persistence

import (
	"context"
)

// UnitOfWork coordinates repositories inside one atomic database
// transaction. Begin returns a context carrying the transaction; repositories
// obtained with that context operate inside it.
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetWalletRepository returns a wallet repository bound to the current transaction
	GetWalletRepository(ctx context.Context) WalletRepository

	// GetTransferRepository returns a transfer repository bound to the current transaction
	GetTransferRepository(ctx context.Context) TransferRepository

	// GetCashoutRepository returns a cashout repository bound to the current transaction
	GetCashoutRepository(ctx context.Context) CashoutRepository

	// GetPaymentMethodRepository returns a payment method repository bound to
	// the current transaction
	GetPaymentMethodRepository(ctx context.Context) PaymentMethodRepository
}
