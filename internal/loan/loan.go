// Package loan amortizes financing plans and scores their affordability
// against observed income and expense history. Scores are advisory
// heuristics with fixed thresholds, not configurable policy.
package loan

import (
	"math"
	"time"

	"github.com/polykhel/billcycle/internal/classify"
	"github.com/polykhel/billcycle/internal/config"
	"github.com/polykhel/billcycle/internal/dateutils"
	"github.com/polykhel/billcycle/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Use the centralized logger from config package
var log = config.Logger

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// historyMonths is the trailing window income and expense averages are drawn
// from when scoring affordability.
const historyMonths = 6

// MonthlyPayment returns the fixed monthly principal-and-interest payment
// for a loan using the standard amortization formula. A zero rate divides
// the principal evenly across the term.
func MonthlyPayment(principal decimal.Decimal, annualRate float64, termMonths int) decimal.Decimal {
	if termMonths <= 0 || !principal.IsPositive() {
		return decimal.Zero
	}
	if annualRate == 0 {
		return principal.Div(decimal.NewFromInt(int64(termMonths))).Round(2)
	}

	monthlyRate := annualRate / 100 / 12
	factor := math.Pow(1+monthlyRate, float64(termMonths))
	p, _ := principal.Float64()
	payment := p * monthlyRate * factor / (factor - 1)

	return decimal.NewFromFloat(payment).Round(2)
}

// Amortization holds the derived cost figures of a plan.
type Amortization struct {
	// MonthlyPayment is principal and interest plus ancillary monthly costs.
	MonthlyPayment decimal.Decimal
	TotalInterest  decimal.Decimal
	// TotalCost includes ancillary costs across the full term.
	TotalCost decimal.Decimal
}

// Amortize computes the plan's derived cost figures.
func Amortize(plan models.LoanPlan) Amortization {
	base := MonthlyPayment(plan.Principal, plan.AnnualRate, plan.TermMonths)
	term := decimal.NewFromInt(int64(plan.TermMonths))

	totalInterest := base.Mul(term).Sub(plan.Principal)
	if totalInterest.IsNegative() {
		totalInterest = decimal.Zero
	}

	return Amortization{
		MonthlyPayment: base.Add(plan.AncillaryMonthly),
		TotalInterest:  totalInterest.Round(2),
		TotalCost:      base.Add(plan.AncillaryMonthly).Mul(term).Round(2),
	}
}

// ScheduleRow is one month of an amortization schedule.
type ScheduleRow struct {
	Term      int
	Date      time.Time
	Payment   decimal.Decimal
	Principal decimal.Decimal
	Interest  decimal.Decimal
	Remaining decimal.Decimal
}

// Schedule materializes the month-by-month amortization of a plan starting
// from the given date. The final row absorbs rounding drift so the remaining
// balance lands exactly at zero.
func Schedule(plan models.LoanPlan, start time.Time) []ScheduleRow {
	if plan.TermMonths <= 0 || !plan.Principal.IsPositive() {
		return nil
	}

	base := MonthlyPayment(plan.Principal, plan.AnnualRate, plan.TermMonths)
	monthlyRate := decimal.NewFromFloat(plan.AnnualRate / 100 / 12)
	remaining := plan.Principal

	rows := make([]ScheduleRow, 0, plan.TermMonths)
	for term := 1; term <= plan.TermMonths; term++ {
		interest := remaining.Mul(monthlyRate).Round(2)
		principal := base.Sub(interest)
		payment := base

		if term == plan.TermMonths {
			principal = remaining
			payment = principal.Add(interest)
		}
		remaining = remaining.Sub(principal)

		rows = append(rows, ScheduleRow{
			Term:      term,
			Date:      dateutils.AddMonths(start, term-1),
			Payment:   payment.Round(2),
			Principal: principal.Round(2),
			Interest:  interest,
			Remaining: remaining.Round(2),
		})
	}
	return rows
}

// History is the trailing income and expense view affordability is scored
// against.
type History struct {
	MonthlyIncome   decimal.Decimal
	MonthlyExpenses decimal.Decimal
}

// TrailingHistory averages the profile's viewable income and expenses over
// the trailing six full months ending at asOf. Transfers are excluded.
func TrailingHistory(ts []models.Transaction, profileID string, asOf time.Time) History {
	windowStart := dateutils.AddMonths(asOf, -(historyMonths - 1))
	windowEnd := dateutils.EndOfMonth(asOf)

	income := decimal.Zero
	expenses := decimal.Zero
	for _, t := range classify.Viewable(classify.ForProfile(ts, profileID)) {
		if t.IsTransfer() || !dateutils.WithinRange(t.Date, windowStart, windowEnd) {
			continue
		}
		if t.IsIncome() {
			income = income.Add(t.Amount)
		} else {
			expenses = expenses.Add(t.Amount)
		}
	}

	months := decimal.NewFromInt(historyMonths)
	return History{
		MonthlyIncome:   income.Div(months).Round(2),
		MonthlyExpenses: expenses.Div(months).Round(2),
	}
}

// Score rates the plan's affordability from 0 to 100 against the history.
// The score starts at 100 and subtracts bounded penalties for debt-to-income
// tiers, post-payment residual-income tiers, and payment-as-share-of-income
// tiers, floored at 0. No observed income scores 0 outright.
func Score(plan models.LoanPlan, history History) int {
	if !history.MonthlyIncome.IsPositive() {
		return 0
	}

	payment := Amortize(plan).MonthlyPayment
	income, _ := history.MonthlyIncome.Float64()
	expenses, _ := history.MonthlyExpenses.Float64()
	pay, _ := payment.Float64()

	score := 100

	dti := (expenses + pay) / income
	switch {
	case dti >= 0.50:
		score -= 40
	case dti >= 0.43:
		score -= 30
	case dti >= 0.36:
		score -= 15
	}

	residual := income - expenses - pay
	switch {
	case residual < 0:
		score -= 30
	case residual < pay:
		score -= 15
	case residual < 2*pay:
		score -= 5
	}

	paymentRatio := pay / income
	switch {
	case paymentRatio >= 0.40:
		score -= 30
	case paymentRatio >= 0.30:
		score -= 20
	case paymentRatio >= 0.20:
		score -= 10
	case paymentRatio >= 0.15:
		score -= 5
	}

	if score < 0 {
		score = 0
	}
	return score
}

// Recompute returns a new plan record with every derived field recalculated
// from the input fields and the profile's trailing history. Derived fields
// are never invalidated lazily; callers persist the returned record whenever
// an input changes.
func Recompute(plan models.LoanPlan, ts []models.Transaction, asOf time.Time) models.LoanPlan {
	amort := Amortize(plan)
	history := TrailingHistory(ts, plan.ProfileID, asOf)

	plan.MonthlyPayment = amort.MonthlyPayment
	plan.TotalInterest = amort.TotalInterest
	plan.TotalCost = amort.TotalCost
	plan.AffordabilityScore = Score(plan, history)

	log.WithFields(logrus.Fields{
		"plan":    plan.ID,
		"payment": plan.MonthlyPayment.StringFixed(2),
		"score":   plan.AffordabilityScore,
	}).Debug("Recomputed loan plan")

	return plan
}
