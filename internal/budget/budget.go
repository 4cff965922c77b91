// Package budget aggregates category spend against allocations and carries
// unspent allocation into the following period.
package budget

import (
	"fmt"
	"time"

	"github.com/google/uuid"
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

// Window is the inclusive date range of one budget period.
type Window struct {
	Start time.Time
	End   time.Time
}

// Key returns the window identifier used as the rollover watermark.
func (w Window) Key() string {
	return dateutils.FormatDay(w.Start)
}

// PeriodWindow resolves the calendar window of the budget period containing
// the given date: the month, quarter, or year.
func PeriodWindow(period models.BudgetPeriod, date time.Time) Window {
	switch period {
	case models.PeriodQuarterly:
		start := dateutils.QuarterStart(date)
		return Window{Start: start, End: start.AddDate(0, 3, -1)}
	case models.PeriodYearly:
		start := dateutils.YearStart(date)
		return Window{Start: start, End: start.AddDate(1, 0, -1)}
	default:
		start := dateutils.StartOfMonth(date)
		return Window{Start: start, End: dateutils.EndOfMonth(start)}
	}
}

// NextWindow returns the period window immediately following w for the
// budget's period.
func NextWindow(period models.BudgetPeriod, w Window) Window {
	return PeriodWindow(period, w.End.AddDate(0, 0, 1))
}

// SpendingByCategory sums the profile's budget-impacting expense spend per
// category within the period window containing the date. Charges paid on
// behalf of someone else are excluded so they never consume allocation.
func SpendingByCategory(b models.Budget, ts []models.Transaction, date time.Time) map[string]decimal.Decimal {
	window := PeriodWindow(b.Period, date)
	spend := make(map[string]decimal.Decimal)

	for _, t := range classify.Viewable(classify.ForProfile(ts, b.ProfileID)) {
		if !t.IsExpense() || t.IsTransfer() {
			continue
		}
		if t.PaidByOther || !t.IsBudgetImpacting() {
			continue
		}
		if !dateutils.WithinRange(t.Date, window.Start, window.End) {
			continue
		}
		spend[t.Category] = spend[t.Category].Add(t.Amount)
	}
	return spend
}

// AllocationStatus is one category's utilization within a period.
type AllocationStatus struct {
	Category  string
	Allocated decimal.Decimal
	Spent     decimal.Decimal
	Remaining decimal.Decimal
	// Percent is utilization capped at 100.
	Percent int
	// Alert is non-empty once utilization reaches the budget's threshold.
	Alert string
}

// WithSpending derives per-allocation spent, remaining, and utilization for
// the period containing the date, raising an alert per category once its
// percentage reaches the budget's threshold.
func WithSpending(b models.Budget, ts []models.Transaction, date time.Time) []AllocationStatus {
	spend := SpendingByCategory(b, ts, date)
	out := make([]AllocationStatus, 0, len(b.Allocations))

	for _, a := range b.Allocations {
		spent := spend[a.Category]
		status := AllocationStatus{
			Category:  a.Category,
			Allocated: a.Allocated,
			Spent:     spent,
			Remaining: a.Allocated.Sub(spent),
		}

		if a.Allocated.IsPositive() {
			pct := spent.Div(a.Allocated).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
			if pct > 100 {
				pct = 100
			}
			if pct < 0 {
				pct = 0
			}
			status.Percent = int(pct)
		} else if spent.IsPositive() {
			status.Percent = 100
		}

		if b.AlertThreshold > 0 && status.Percent >= b.AlertThreshold {
			status.Alert = fmt.Sprintf("%s has reached %d%% of its allocation", a.Category, status.Percent)
		}

		out = append(out, status)
	}
	return out
}

// unspent returns the category's remaining allocation for the closing
// window, floored at zero: overspend does not claw back the next period.
func unspent(allocated, spent decimal.Decimal) decimal.Decimal {
	remaining := allocated.Sub(spent)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// findNext locates an existing budget whose own period window is the next
// window, for the same profile and cadence. Lookup-before-insert keeps the
// next period from ever being created twice. The match is on the candidate's
// window, not its lifetime: an open-ended earlier budget contains every
// future date, and chained rollovers must never re-target it.
func findNext(budgets []models.Budget, b models.Budget, next Window) (models.Budget, bool) {
	for _, candidate := range budgets {
		if candidate.ID == b.ID {
			continue
		}
		if candidate.ProfileID != b.ProfileID || candidate.Period != b.Period {
			continue
		}
		if PeriodWindow(candidate.Period, candidate.StartDate).Key() == next.Key() {
			return candidate, true
		}
	}
	return models.Budget{}, false
}

// RolloverResult reports what ProcessRollover did.
type RolloverResult struct {
	// Budget is the next period's budget after the rollover, nil when the
	// rollover did not apply.
	Budget *models.Budget
	// Created is true when the next period's budget was created rather than
	// updated in place.
	Created bool
}

// ProcessRollover carries each category's unspent remainder from the period
// containing fromDate into the following period's budget. It is a no-op
// unless the budget opts into rollover, and applying the same closing period
// twice is also a no-op: the target budget's rollover watermark records the
// closing window already applied.
func ProcessRollover(b models.Budget, budgets []models.Budget, ts []models.Transaction, fromDate time.Time) RolloverResult {
	if !b.RolloverUnspent {
		return RolloverResult{}
	}

	closing := PeriodWindow(b.Period, fromDate)
	next := NextWindow(b.Period, closing)
	spend := SpendingByCategory(b, ts, fromDate)

	target, exists := findNext(budgets, b, next)
	if exists && target.LastRolloverFrom == closing.Key() {
		log.WithFields(logrus.Fields{
			"budget":  b.ID,
			"closing": closing.Key(),
		}).Debug("Rollover already applied for closing period")
		return RolloverResult{Budget: &target}
	}

	if !exists {
		target = models.Budget{
			ID:              uuid.NewString(),
			ProfileID:       b.ProfileID,
			Period:          b.Period,
			StartDate:       next.Start,
			RolloverUnspent: b.RolloverUnspent,
			AlertThreshold:  b.AlertThreshold,
		}
		for _, a := range b.Allocations {
			target.Allocations = append(target.Allocations, models.CategoryAllocation{
				Category:  a.Category,
				Allocated: a.Allocated,
			})
		}
	}

	for _, a := range b.Allocations {
		remainder := unspent(a.Allocated, spend[a.Category])
		if remainder.IsZero() {
			continue
		}
		applied := false
		for i := range target.Allocations {
			if target.Allocations[i].Category == a.Category {
				target.Allocations[i].Allocated = target.Allocations[i].Allocated.Add(remainder)
				applied = true
				break
			}
		}
		if !applied {
			target.Allocations = append(target.Allocations, models.CategoryAllocation{
				Category:  a.Category,
				Allocated: a.Allocated.Add(remainder),
			})
		}
	}

	target.LastRolloverFrom = closing.Key()

	log.WithFields(logrus.Fields{
		"budget":  b.ID,
		"closing": closing.Key(),
		"created": !exists,
	}).Info("Processed budget rollover")

	return RolloverResult{Budget: &target, Created: !exists}
}
