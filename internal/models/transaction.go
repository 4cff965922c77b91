package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a transaction
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// PaymentMethod represents how a transaction was settled
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "cash"
	MethodCard     PaymentMethod = "card"
	MethodBank     PaymentMethod = "bank"
	MethodTransfer PaymentMethod = "transfer"
)

// Transaction represents a single economic event owned by a profile.
//
// A transaction with IsRecurring=false carries no RecurringRule. Installment
// obligations materialize as one "parent" record holding the total principal
// plus per-month "virtual" entries; see IsParent.
type Transaction struct {
	ID            string          `json:"id" yaml:"id"`
	ProfileID     string          `json:"profile_id" yaml:"profile_id"`
	Type          TransactionType `json:"type" yaml:"type"`
	Amount        decimal.Decimal `json:"amount" yaml:"amount"`
	Date          time.Time       `json:"date" yaml:"date"`
	Category      string          `json:"category,omitempty" yaml:"category,omitempty"`
	Description   string          `json:"description,omitempty" yaml:"description,omitempty"`
	CardID        string          `json:"card_id,omitempty" yaml:"card_id,omitempty"`
	AccountID     string          `json:"account_id,omitempty" yaml:"account_id,omitempty"`
	ToAccountID   string          `json:"to_account_id,omitempty" yaml:"to_account_id,omitempty"`
	TransferFee   decimal.Decimal `json:"transfer_fee,omitempty" yaml:"transfer_fee,omitempty"`
	PaymentMethod PaymentMethod   `json:"payment_method,omitempty" yaml:"payment_method,omitempty"`

	IsRecurring   bool           `json:"is_recurring,omitempty" yaml:"is_recurring,omitempty"`
	RecurringRule *RecurringRule `json:"recurring_rule,omitempty" yaml:"recurring_rule,omitempty"`

	ParentTransactionID string `json:"parent_transaction_id,omitempty" yaml:"parent_transaction_id,omitempty"`
	IsVirtual           bool   `json:"is_virtual,omitempty" yaml:"is_virtual,omitempty"`

	// BudgetImpacting defaults to true when absent.
	BudgetImpacting *bool `json:"is_budget_impacting,omitempty" yaml:"is_budget_impacting,omitempty"`

	// PaidByOther marks a charge settled on behalf of someone outside this
	// profile; it is advisory and excluded from budget spend.
	PaidByOther bool `json:"paid_by_other,omitempty" yaml:"paid_by_other,omitempty"`
}

// IsBudgetImpacting reports whether the transaction counts toward budget
// spend. Absent the explicit flag, every transaction counts.
func (t Transaction) IsBudgetImpacting() bool {
	if t.BudgetImpacting == nil {
		return true
	}
	return *t.BudgetImpacting
}

// IsTransfer reports whether the transaction moves money between two bank
// accounts rather than in or out of the profile.
func (t Transaction) IsTransfer() bool {
	return t.ToAccountID != ""
}

// IsIncome reports whether the transaction credits the profile.
func (t Transaction) IsIncome() bool {
	return t.Type == TypeIncome
}

// IsExpense reports whether the transaction debits the profile.
func (t Transaction) IsExpense() bool {
	return t.Type == TypeExpense
}

// BoolPtr is a convenience for populating optional boolean fields.
func BoolPtr(b bool) *bool {
	return &b
}
