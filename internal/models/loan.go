package models

import "github.com/shopspring/decimal"

// LoanPlan is a prospective or active financing scenario.
//
// The derived fields are caches recomputed by loan.Recompute whenever any
// input field changes; they are never mutated in place elsewhere.
type LoanPlan struct {
	ID        string `json:"id" yaml:"id"`
	ProfileID string `json:"profile_id" yaml:"profile_id"`
	Name      string `json:"name" yaml:"name"`

	Principal decimal.Decimal `json:"principal" yaml:"principal"`
	// AnnualRate is the nominal yearly interest rate in percent, e.g. 5.25.
	AnnualRate float64 `json:"annual_rate" yaml:"annual_rate"`
	TermMonths int     `json:"term_months" yaml:"term_months"`
	// AncillaryMonthly is the sum of recurring side costs (tax, insurance,
	// HOA and similar) added on top of principal and interest each month.
	AncillaryMonthly decimal.Decimal `json:"ancillary_monthly,omitempty" yaml:"ancillary_monthly,omitempty"`

	// Derived fields, recomputed on every input change.
	MonthlyPayment     decimal.Decimal `json:"monthly_payment" yaml:"monthly_payment"`
	TotalInterest      decimal.Decimal `json:"total_interest" yaml:"total_interest"`
	TotalCost          decimal.Decimal `json:"total_cost" yaml:"total_cost"`
	AffordabilityScore int             `json:"affordability_score" yaml:"affordability_score"`
}
