// Package terms computes an installment's or recurring rule's position in its
// term schedule from a start date and a reference date.
package terms

import (
	"math"
	"time"

	"github.com/polykhel/billcycle/internal/dateutils"
	"github.com/polykhel/billcycle/internal/models"
)

// CurrentTerm returns the 1-indexed term the obligation is in as of the
// reference date: the calendar-month difference plus one, floored at 1. The
// floor keeps pre-inception obligations displayable as term 1 rather than a
// zero or negative term.
func CurrentTerm(start, asOf time.Time) int {
	term := dateutils.MonthsBetween(start, asOf) + 1
	if term < 1 {
		return 1
	}
	return term
}

// CurrentTermFromString parses the start date with the common formats and
// returns the current term. An unparsable start date yields term 1; term
// figures feed display logic and must never fail a view.
func CurrentTermFromString(start string, asOf time.Time) int {
	parsed, err := dateutils.ParseDay(start)
	if err != nil {
		return 1
	}
	return CurrentTerm(parsed, asOf)
}

// RuleTerm returns the current term for a recurring rule: the stored term
// when manual term entry is in use, else the term recomputed from the rule's
// start date.
func RuleTerm(rule *models.RecurringRule, asOf time.Time) int {
	if rule == nil {
		return 1
	}
	if rule.ManualTerm && rule.CurrentTerm >= 1 {
		return rule.CurrentTerm
	}
	if rule.StartDate.IsZero() {
		return 1
	}
	return CurrentTerm(rule.StartDate, asOf)
}

// Progress returns the percentage of terms elapsed, rounded to the nearest
// whole percent and clamped to [0, 100].
func Progress(currentTerm, totalTerms int) int {
	if totalTerms <= 0 {
		return 0
	}
	pct := int(math.Round(float64(currentTerm) / float64(totalTerms) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// IsCompleted reports whether the obligation has reached its final term.
func IsCompleted(currentTerm, totalTerms int) bool {
	return totalTerms > 0 && currentTerm >= totalTerms
}
