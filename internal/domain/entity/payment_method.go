package entity

import (
	"fmt"
	"time"
)

// PaymentMethodKind distinguishes linked funding sources
type PaymentMethodKind string

const (
	MethodBank PaymentMethodKind = "bank"
	MethodCard PaymentMethodKind = "card"
)

// PaymentMethod is a linked external funding source. This core only reads
// payment methods; adding and removing them belongs to a separate service.
type PaymentMethod struct {
	ID        uint64
	OwnerID   uint64
	Kind      PaymentMethodKind
	IsDefault bool
	Verified  bool
	Last4     string
	CreatedAt time.Time
}

// Label returns the human-readable funding-source description stored on
// transfers for audit and display, e.g. "bank ****1234"
func (m *PaymentMethod) Label() string {
	return fmt.Sprintf("%s ****%s", m.Kind, m.Last4)
}

// Usable reports whether the method can fund the external portion of a transfer
func (m *PaymentMethod) Usable() bool {
	return m.Verified
}
