// Package project aggregates bank balances, classified transactions, and
// statements into running and projected cash positions.
package project

import (
	"sort"
	"time"

	"github.com/polykhel/billcycle/internal/classify"
	"github.com/polykhel/billcycle/internal/config"
	"github.com/polykhel/billcycle/internal/dateutils"
	"github.com/polykhel/billcycle/internal/ledger"
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

// Inputs bundles the immutable collections the projector reads. The
// projector never mutates them.
type Inputs struct {
	Accounts     []models.BankAccount
	Balances     []models.BankBalance
	Transactions []models.Transaction
	Statements   []models.Statement
	Cards        []models.Card
}

// baseBalance resolves the stored balance floor for a profile and month:
// per-account snapshot rows summed when any exist, else a profile-level
// snapshot row, else the sum of the profile's account initial balances.
func baseBalance(in Inputs, profileID, month string) decimal.Decimal {
	perAccount := decimal.Zero
	perAccountSeen := false
	profileLevel := decimal.Zero
	profileLevelSeen := false

	for _, b := range in.Balances {
		if b.ProfileID != profileID || b.Month != month {
			continue
		}
		if b.AccountID != "" {
			perAccount = perAccount.Add(b.Balance)
			perAccountSeen = true
		} else {
			profileLevel = profileLevel.Add(b.Balance)
			profileLevelSeen = true
		}
	}

	if perAccountSeen {
		return perAccount
	}
	if profileLevelSeen {
		return profileLevel
	}

	total := decimal.Zero
	for _, a := range in.Accounts {
		if a.ProfileID == profileID {
			total = total.Add(a.InitialBalance)
		}
	}
	return total
}

// cashDelta returns how a transaction moves tracked cash. Transactions with
// no linked account do not touch a tracked balance and contribute nothing.
// Transfers between accounts net out except for their fee.
func cashDelta(t models.Transaction) decimal.Decimal {
	if t.AccountID == "" {
		return decimal.Zero
	}
	if t.IsTransfer() {
		return t.TransferFee.Neg()
	}
	if t.IsIncome() {
		return t.Amount
	}
	return t.Amount.Neg()
}

// cashMoving collects, in date order, the transactions that move the
// profile's tracked cash by the target date: everything dated on or before
// the date, plus scheduled recurring or installment entries whose next
// occurrence or start date has arrived even though their nominal date is
// later. Entries appearing in both sets are deduplicated by id.
func cashMoving(ts []models.Transaction, profileID string, date time.Time) []models.Transaction {
	viewable := classify.Viewable(classify.ForProfile(ts, profileID))

	seen := make(map[string]bool, len(viewable))
	var out []models.Transaction

	add := func(t models.Transaction) {
		if t.ID != "" && seen[t.ID] {
			return
		}
		if t.ID != "" {
			seen[t.ID] = true
		}
		out = append(out, t)
	}

	for _, t := range viewable {
		if dateutils.OnOrBefore(t.Date, date) {
			add(t)
		}
	}
	for _, t := range viewable {
		if dateutils.OnOrBefore(t.Date, date) || !t.IsRecurring || t.RecurringRule == nil {
			continue
		}
		if start := t.RecurringRule.EffectiveStart(); !start.IsZero() && dateutils.OnOrBefore(start, date) {
			add(t)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// RunningBalance returns the profile's tracked cash position as of the given
// date: the stored balance floor for the date's month plus every cash-moving
// transaction applied in date order. Rounded to 2 decimal places.
func RunningBalance(in Inputs, profileID string, date time.Time) decimal.Decimal {
	balance := baseBalance(in, profileID, dateutils.MonthKey(date))

	for _, t := range cashMoving(in.Transactions, profileID, date) {
		balance = balance.Add(cashDelta(t))
	}

	result := balance.Round(2)

	log.WithFields(logrus.Fields{
		"profile": profileID,
		"date":    dateutils.FormatDay(date),
		"balance": result.StringFixed(2),
	}).Debug("Computed running balance")

	return result
}

// AvailableNow returns the current liquid balance only. The 7-day
// bill-due adjustment stays with the caller: it depends on due-date
// enumeration owned by the presentation layer.
func AvailableNow(in Inputs, profileID string, now time.Time) decimal.Decimal {
	return RunningBalance(in, profileID, now)
}

// ProjectedEndOfMonth returns the current liquid balance plus projected
// future income in the rest of the month minus committed future expenses.
func ProjectedEndOfMonth(in Inputs, profileID string, now time.Time) decimal.Decimal {
	balance := RunningBalance(in, profileID, now)
	monthEnd := dateutils.EndOfMonth(now)

	for _, t := range classify.Viewable(classify.ForProfile(in.Transactions, profileID)) {
		if !dateutils.OnOrBefore(t.Date, monthEnd) || dateutils.OnOrBefore(t.Date, now) {
			continue
		}
		if t.IsTransfer() {
			balance = balance.Sub(t.TransferFee)
			continue
		}
		if t.IsIncome() {
			balance = balance.Add(t.Amount)
		} else {
			balance = balance.Sub(t.Amount)
		}
	}

	return balance.Round(2)
}

// Buffer returns the profile's debt buffer for a month: total bank balance
// minus the sum of all unpaid statement amounts across the profile's cards.
func Buffer(in Inputs, profileID, month string) decimal.Decimal {
	bank := baseBalance(in, profileID, month)

	var cards []models.Card
	for _, c := range in.Cards {
		if c.ProfileID == profileID {
			cards = append(cards, c)
		}
	}

	return bank.Sub(ledger.UnpaidTotal(in.Statements, cards, month)).Round(2)
}

// IsDangerZone reports whether the month's unpaid statements exceed the
// profile's bank balance.
func IsDangerZone(in Inputs, profileID, month string) bool {
	return Buffer(in, profileID, month).IsNegative()
}

// MonthSummary is the aggregate view of one profile month.
type MonthSummary struct {
	Month    string
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
}

// Summarize totals the profile's viewable income and expenses for a calendar
// month. Transfers move cash between accounts and are excluded.
func Summarize(ts []models.Transaction, profileID, month string) (MonthSummary, error) {
	inMonth, err := classify.ForMonth(classify.ForProfile(ts, profileID), month)
	if err != nil {
		return MonthSummary{}, err
	}

	summary := MonthSummary{Month: month, Income: decimal.Zero, Expenses: decimal.Zero}
	for _, t := range inMonth {
		if t.IsTransfer() {
			continue
		}
		if t.IsIncome() {
			summary.Income = summary.Income.Add(t.Amount)
		} else {
			summary.Expenses = summary.Expenses.Add(t.Amount)
		}
	}
	summary.Net = summary.Income.Sub(summary.Expenses).Round(2)
	return summary, nil
}
