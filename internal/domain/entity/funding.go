package entity

// FundingPlan describes where the value of a transfer comes from: the wallet
// balance, an external source, or a split between the two. Only the
// FromBalanceCents portion is debited from the ledger; the external portion
// settles out-of-band on the payment rails.
type FundingPlan struct {
	FromBalanceCents  int64
	FromExternalCents int64
	ExternalSource    *PaymentMethod
}

// FullyFromBalance reports whether the wallet alone funds the transfer
func (p *FundingPlan) FullyFromBalance() bool {
	return p.FromExternalCents == 0
}

// Label returns the funding-source label stored on the transfer
func (p *FundingPlan) Label() string {
	switch {
	case p.FromExternalCents == 0:
		return "balance"
	case p.FromBalanceCents == 0:
		return p.ExternalSource.Label()
	default:
		return "balance + " + p.ExternalSource.Label()
	}
}
