// Package cycle resolves a card's statement-period boundaries and payment due
// dates from its cycle configuration. Everything here is pure calendar-day
// arithmetic; the same card and date always produce the same answer.
package cycle

import (
	"time"

	"github.com/polykhel/billcycle/internal/config"
	"github.com/polykhel/billcycle/internal/dateutils"
	"github.com/polykhel/billcycle/internal/models"
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

// Period is an inclusive statement-period date range at calendar-day
// precision.
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether a transaction date falls inside the period.
func (p Period) Contains(date time.Time) bool {
	return dateutils.WithinRange(date, p.Start, p.End)
}

// closeDayIn resolves the card's cycle-close day within the month containing
// t, clamped to the month's last day.
func closeDayIn(card models.Card, t time.Time) int {
	return dateutils.ClampDay(card.CycleCloseDay, t)
}

// paymentShift is 1 when payment lags a month behind settlement (the due day
// precedes the cycle-close day), else 0.
func paymentShift(card models.Card) int {
	if card.PaymentLagsMonth() {
		return 1
	}
	return 0
}

// cycleShift is 1 when a transaction on this date settles into the next
// cycle (its day-of-month has reached the cycle-close day), else 0.
func cycleShift(card models.Card, date time.Time) int {
	if date.Day() >= closeDayIn(card, date) {
		return 1
	}
	return 0
}

// SettlementMonth returns the start of the month whose statement a
// transaction on the given date settles into.
func SettlementMonth(card models.Card, date time.Time) time.Time {
	return dateutils.AddMonths(date, cycleShift(card, date))
}

// PaymentMonth returns the month key (YYYY-MM) of the payment month a
// transaction on the given date is billed against: the settlement month,
// advanced one further month when payment lags settlement.
func PaymentMonth(card models.Card, date time.Time) string {
	shifted := dateutils.AddMonths(date, cycleShift(card, date)+paymentShift(card))
	return dateutils.MonthKey(shifted)
}

// SettlementMonthKey returns the month key (YYYY-MM) of the settlement month
// whose statement is paid in the given payment month. Statement ledger rows
// are keyed by the settlement month, so lookups starting from a payment month
// step back over the card's payment lag first.
func SettlementMonthKey(card models.Card, paymentMonth string) (string, error) {
	monthStart, err := dateutils.ParseMonthKey(paymentMonth)
	if err != nil {
		return "", err
	}
	return dateutils.MonthKey(dateutils.AddMonths(monthStart, -paymentShift(card))), nil
}

// StatementPeriod returns the inclusive date range of transactions that
// settle into the given payment month (YYYY-MM) for the card.
//
// The close month is the payment month stepped back by the payment lag; the
// period runs from the cycle-close day of the month before the close month
// through the day before the cycle-close day of the close month, with both
// boundary days clamped into their months. A cycle-close day of 1 collapses
// the period to the entire month preceding the close month, since "day 0" of
// the close month is not addressable.
func StatementPeriod(card models.Card, paymentMonth string) (Period, error) {
	monthStart, err := dateutils.ParseMonthKey(paymentMonth)
	if err != nil {
		return Period{}, err
	}

	closeMonth := dateutils.AddMonths(monthStart, -paymentShift(card))
	prevMonth := dateutils.AddMonths(closeMonth, -1)

	if card.CycleCloseDay <= 1 {
		// Full previous calendar month.
		return Period{
			Start: dateutils.StartOfMonth(prevMonth),
			End:   dateutils.EndOfMonth(prevMonth),
		}, nil
	}

	start := dateutils.DateInMonth(card.CycleCloseDay, prevMonth)
	end := dateutils.DateInMonth(closeDayIn(card, closeMonth), closeMonth).AddDate(0, 0, -1)

	log.WithFields(logrus.Fields{
		"card":          card.ID,
		"payment_month": paymentMonth,
		"start":         dateutils.FormatDay(start),
		"end":           dateutils.FormatDay(end),
	}).Debug("Resolved statement period")

	return Period{Start: start, End: end}, nil
}

// DueDate returns the payment due date for a transaction on the given date.
//
// The settlement month is resolved first, then the payment month: the same
// month when the due day comes after the cycle-close day, else the following
// month. A manual override date on the settlement month's statement wins
// unconditionally; otherwise the due date is the card's payment-due day
// clamped into the payment month.
func DueDate(card models.Card, date time.Time, statements []models.Statement) time.Time {
	settlement := SettlementMonth(card, date)
	settlementKey := dateutils.MonthKey(settlement)

	for _, s := range statements {
		if s.CardID == card.ID && s.Month == settlementKey && s.ManualDueDate != nil {
			return dateutils.Day(*s.ManualDueDate)
		}
	}

	paymentMonth := settlement
	if card.PaymentDueDay <= card.CycleCloseDay {
		paymentMonth = dateutils.AddMonths(settlement, 1)
	}

	return dateutils.DateInMonth(card.PaymentDueDay, paymentMonth)
}
