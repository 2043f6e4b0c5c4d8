package rails

import (
	"context"

	"github.com/payflow-labs/payflow/internal/domain/entity"
)

// Service names used by the circuit breaker registry. One breaker guards
// each external network.
const (
	ServiceBankAPI     = "bank-api"
	ServiceCardNetwork = "card-network"
	ServiceACHNetwork  = "ach-network"
)

// PaymentRails abstracts the external bank/card/ACH networks. This core
// never performs real settlement; it only instructs the rails and records
// the returned reference. Every implementation call runs behind a circuit
// breaker and the externalPayment retry class.
type PaymentRails interface {
	// Collect pulls amountCents from the external payment method (the
	// external portion of a transfer, or a deposit). Returns the rail's
	// settlement reference.
	Collect(ctx context.Context, method *entity.PaymentMethod, amountCents int64) (string, error)

	// Payout pushes amountCents from the platform to the external payment
	// method (a cashout). Returns the rail's settlement reference.
	Payout(ctx context.Context, method *entity.PaymentMethod, amountCents int64) (string, error)
}
