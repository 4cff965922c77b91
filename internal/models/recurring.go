package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RuleType discriminates the variants of a recurring rule
type RuleType string

const (
	RuleInstallment  RuleType = "installment"
	RuleSubscription RuleType = "subscription"
	RuleCustom       RuleType = "custom"
)

// Frequency represents how often a subscription or custom rule recurs
type Frequency string

const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// RecurringRule describes how a recurring transaction repeats.
//
// The installment variant carries the loan-like fields; CurrentTerm is
// recomputed from StartDate against a reference date rather than manually
// incremented, unless ManualTerm is set. Subscription and custom variants
// carry a frequency and the next occurrence date instead.
type RecurringRule struct {
	Type RuleType `json:"type" yaml:"type"`

	// Installment fields
	TotalAmount        decimal.Decimal `json:"total_amount,omitempty" yaml:"total_amount,omitempty"`
	TotalTerms         int             `json:"total_terms,omitempty" yaml:"total_terms,omitempty"`
	CurrentTerm        int             `json:"current_term,omitempty" yaml:"current_term,omitempty"`
	ManualTerm         bool            `json:"manual_term,omitempty" yaml:"manual_term,omitempty"`
	StartDate          time.Time       `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate            time.Time       `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	InterestRate       float64         `json:"interest_rate,omitempty" yaml:"interest_rate,omitempty"`
	InstallmentGroupID string          `json:"installment_group_id,omitempty" yaml:"installment_group_id,omitempty"`

	// Subscription / custom fields
	Frequency      Frequency `json:"frequency,omitempty" yaml:"frequency,omitempty"`
	NextOccurrence time.Time `json:"next_occurrence,omitempty" yaml:"next_occurrence,omitempty"`
}

// IsInstallment reports whether the rule is the installment variant.
func (r *RecurringRule) IsInstallment() bool {
	return r != nil && r.Type == RuleInstallment
}

// EffectiveStart returns the date the rule becomes active: the installment
// start date, or the next occurrence for subscription/custom rules.
func (r *RecurringRule) EffectiveStart() time.Time {
	if r == nil {
		return time.Time{}
	}
	if r.Type == RuleInstallment {
		return r.StartDate
	}
	return r.NextOccurrence
}
