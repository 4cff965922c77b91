package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRecord is one discrete payment applied to a statement.
type PaymentRecord struct {
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
	Date   time.Time       `json:"date" yaml:"date"`
}

// Statement is the single ledger row for a (card, calendar month) pair.
//
// At most one statement exists per pair; the ledger upserts via lookup, never
// blind insert. Manual override fields, when present, win over computed
// values.
type Statement struct {
	ID     string `json:"id" yaml:"id"`
	CardID string `json:"card_id" yaml:"card_id"`
	// Month is the settlement month key (YYYY-MM).
	Month string `json:"month" yaml:"month"`

	Amount       decimal.Decimal  `json:"amount" yaml:"amount"`
	ManualAmount *decimal.Decimal `json:"manual_amount,omitempty" yaml:"manual_amount,omitempty"`

	IsPaid     bool            `json:"is_paid" yaml:"is_paid"`
	PaidAmount decimal.Decimal `json:"paid_amount" yaml:"paid_amount"`
	Payments   []PaymentRecord `json:"payments,omitempty" yaml:"payments,omitempty"`

	ManualCloseDate   *time.Time `json:"manual_close_date,omitempty" yaml:"manual_close_date,omitempty"`
	ManualPaymentDate *time.Time `json:"manual_payment_date,omitempty" yaml:"manual_payment_date,omitempty"`
	ManualDueDate     *time.Time `json:"manual_due_date,omitempty" yaml:"manual_due_date,omitempty"`

	IsUnbilled bool `json:"is_unbilled,omitempty" yaml:"is_unbilled,omitempty"`
}

// EffectiveAmount returns the manually adjusted amount if present, else the
// computed amount.
func (s Statement) EffectiveAmount() decimal.Decimal {
	if s.ManualAmount != nil {
		return *s.ManualAmount
	}
	return s.Amount
}

// Remaining returns the unpaid portion of the effective amount, floored at zero.
func (s Statement) Remaining() decimal.Decimal {
	remaining := s.EffectiveAmount().Sub(s.PaidAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// Key returns the unique (card, month) identity of the statement.
func (s Statement) Key() string {
	return s.CardID + "/" + s.Month
}
