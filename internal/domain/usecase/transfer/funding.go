package transfer

import (
	"github.com/payflow-labs/payflow/internal/domain/entity"
	errs "github.com/payflow-labs/payflow/internal/domain/error"
)

// FundingResolver decides how a requested amount is funded: wallet balance
// first, then the remainder from an external source chosen by the waterfall.
// The resolver is pure and never mutates state, so its behavior is fully
// determined by its inputs.
type FundingResolver struct{}

// NewFundingResolver creates a FundingResolver
func NewFundingResolver() *FundingResolver {
	return &FundingResolver{}
}

// Resolve builds a funding plan for the requested amount given the sender's
// balance and verified payment methods. Waterfall, highest priority first:
//  1. wallet balance covers everything -> balance only
//  2. remainder -> default verified bank account
//  3. remainder -> any verified bank account
//  4. remainder -> any verified card
//
// If no source covers the remainder the resolution fails with an
// insufficient-funding error.
func (r *FundingResolver) Resolve(senderID uint64, balanceCents, amountCents int64, methods []*entity.PaymentMethod) (*entity.FundingPlan, error) {
	if balanceCents >= amountCents {
		return &entity.FundingPlan{
			FromBalanceCents:  amountCents,
			FromExternalCents: 0,
		}, nil
	}

	remainder := amountCents - balanceCents
	source := pickExternalSource(methods)
	if source == nil {
		return nil, errs.NewFundingError(senderID, amountCents, balanceCents, len(methods))
	}

	return &entity.FundingPlan{
		FromBalanceCents:  balanceCents,
		FromExternalCents: remainder,
		ExternalSource:    source,
	}, nil
}

// pickExternalSource walks the waterfall over verified methods
func pickExternalSource(methods []*entity.PaymentMethod) *entity.PaymentMethod {
	var anyBank, anyCard *entity.PaymentMethod

	for _, m := range methods {
		if !m.Usable() {
			continue
		}
		switch m.Kind {
		case entity.MethodBank:
			if m.IsDefault {
				return m
			}
			if anyBank == nil {
				anyBank = m
			}
		case entity.MethodCard:
			if anyCard == nil {
				anyCard = m
			}
		}
	}

	if anyBank != nil {
		return anyBank
	}
	return anyCard
}
