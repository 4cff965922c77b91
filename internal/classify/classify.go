// Package classify assigns transactions to semantic buckets and filters
// transaction sets for ledger and list views.
package classify

import (
	"time"

	"github.com/polykhel/billcycle/internal/config"
	"github.com/polykhel/billcycle/internal/cycle"
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

// Bucket is the semantic classification of a transaction.
type Bucket string

const (
	BucketDirect      Bucket = "direct"
	BucketRecurring   Bucket = "recurring"
	BucketInstallment Bucket = "installment"
)

// Classify assigns the transaction's bucket. The function is total: every
// transaction maps to exactly one bucket.
func Classify(t models.Transaction) Bucket {
	if !t.IsRecurring || t.RecurringRule == nil {
		return BucketDirect
	}
	if t.RecurringRule.Type == models.RuleInstallment {
		return BucketInstallment
	}
	return BucketRecurring
}

// IsParent reports whether the transaction is an installment parent: the
// single non-budget-impacting record holding the obligation's total
// principal. Parents exist only for net-worth and debt tracking; every other
// recurring or installment record, including legacy single-entry monthly
// rows, is a viewable ledger entry.
func IsParent(t models.Transaction) bool {
	return t.IsRecurring &&
		t.RecurringRule.IsInstallment() &&
		!t.IsVirtual &&
		t.ParentTransactionID == "" &&
		t.BudgetImpacting != nil && !*t.BudgetImpacting
}

// Viewable filters out parent transactions. Any ledger, list, or spend total
// must operate on the viewable set so principals are never double counted.
func Viewable(ts []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, 0, len(ts))
	for _, t := range ts {
		if !IsParent(t) {
			out = append(out, t)
		}
	}
	return out
}

// Parents returns only the installment parent records.
func Parents(ts []models.Transaction) []models.Transaction {
	var out []models.Transaction
	for _, t := range ts {
		if IsParent(t) {
			out = append(out, t)
		}
	}
	return out
}

// TotalInstallmentPrincipal sums the principal held by parent records, for
// net-worth aggregations that explicitly request parents.
func TotalInstallmentPrincipal(ts []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range Parents(ts) {
		if t.RecurringRule != nil && !t.RecurringRule.TotalAmount.IsZero() {
			total = total.Add(t.RecurringRule.TotalAmount)
		} else {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// ForStatementPeriod returns the card's viewable transactions dated inside
// the statement period that settles into the given payment month.
func ForStatementPeriod(ts []models.Transaction, card models.Card, paymentMonth string) ([]models.Transaction, error) {
	period, err := cycle.StatementPeriod(card, paymentMonth)
	if err != nil {
		return nil, err
	}

	var out []models.Transaction
	for _, t := range Viewable(ts) {
		if t.CardID == card.ID && period.Contains(t.Date) {
			out = append(out, t)
		}
	}

	log.WithFields(logrus.Fields{
		"card":          card.ID,
		"payment_month": paymentMonth,
		"count":         len(out),
	}).Debug("Filtered transactions to statement period")

	return out, nil
}

// ForMonth returns the viewable transactions dated inside the given calendar
// month (YYYY-MM), inclusive of both boundary days.
func ForMonth(ts []models.Transaction, month string) ([]models.Transaction, error) {
	start, err := dateutils.ParseMonthKey(month)
	if err != nil {
		return nil, err
	}
	end := dateutils.EndOfMonth(start)

	var out []models.Transaction
	for _, t := range Viewable(ts) {
		if dateutils.WithinRange(t.Date, start, end) {
			out = append(out, t)
		}
	}
	return out, nil
}

// ForProfile narrows a transaction set to one profile.
func ForProfile(ts []models.Transaction, profileID string) []models.Transaction {
	var out []models.Transaction
	for _, t := range ts {
		if t.ProfileID == profileID {
			out = append(out, t)
		}
	}
	return out
}

// UpToDate returns the viewable transactions dated on or before the given
// date.
func UpToDate(ts []models.Transaction, date time.Time) []models.Transaction {
	var out []models.Transaction
	for _, t := range Viewable(ts) {
		if dateutils.OnOrBefore(t.Date, date) {
			out = append(out, t)
		}
	}
	return out
}
