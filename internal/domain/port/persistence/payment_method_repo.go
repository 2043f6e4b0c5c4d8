package persistence

import (
	"context"

	"github.com/payflow-labs/payflow/internal/domain/entity"
)

// PaymentMethodRepository provides read-only access to linked funding
// sources. This core never mutates payment methods.
type PaymentMethodRepository interface {
	// ListVerifiedByOwner returns the owner's verified payment methods
	ListVerifiedByOwner(ctx context.Context, ownerID uint64) ([]*entity.PaymentMethod, error)
}
