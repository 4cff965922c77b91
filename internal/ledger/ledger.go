// Package ledger produces and updates statement rows, one per (card, month)
// pair. Every operation is an upsert via lookup: operating on a missing pair
// lazily creates the statement rather than erroring, and a duplicate row for
// one pair can never be introduced. Functions return updated copies; callers
// persist them.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/polykhel/billcycle/internal/config"
	"github.com/polykhel/billcycle/internal/engerrors"
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

// Find returns the statement for a (card, month) pair and whether it exists.
func Find(statements []models.Statement, cardID, month string) (models.Statement, bool) {
	i := findIndex(statements, cardID, month)
	if i < 0 {
		return models.Statement{}, false
	}
	return statements[i], true
}

func findIndex(statements []models.Statement, cardID, month string) int {
	for i, s := range statements {
		if s.CardID == cardID && s.Month == month {
			return i
		}
	}
	return -1
}

// upsert replaces the row matching s's key or appends a new one.
func upsert(statements []models.Statement, s models.Statement) []models.Statement {
	out := append([]models.Statement(nil), statements...)
	if i := findIndex(out, s.CardID, s.Month); i >= 0 {
		out[i] = s
		return out
	}
	return append(out, s)
}

// newStatement lazily creates the row for a (card, month) pair. New rows are
// unpaid and unbilled until an amount is confirmed or a payment lands.
func newStatement(cardID, month string) models.Statement {
	return models.Statement{
		ID:         uuid.NewString(),
		CardID:     cardID,
		Month:      month,
		IsPaid:     false,
		IsUnbilled: true,
	}
}

// SetAmount upserts the computed amount owed for a (card, month) statement.
func SetAmount(statements []models.Statement, cardID, month string, amount decimal.Decimal) ([]models.Statement, models.Statement) {
	s, ok := Find(statements, cardID, month)
	if !ok {
		s = newStatement(cardID, month)
	}
	s.Amount = amount
	s.IsPaid = s.PaidAmount.GreaterThanOrEqual(s.EffectiveAmount()) && !s.EffectiveAmount().IsZero()
	if s.IsPaid {
		s.IsUnbilled = false
	}

	log.WithFields(logrus.Fields{
		"card":   cardID,
		"month":  month,
		"amount": amount.StringFixed(2),
	}).Debug("Set statement amount")

	return upsert(statements, s), s
}

// SetManualAmount records a manual override of the amount owed. The override
// wins over the computed amount everywhere the effective amount is read.
func SetManualAmount(statements []models.Statement, cardID, month string, amount decimal.Decimal) ([]models.Statement, models.Statement) {
	s, ok := Find(statements, cardID, month)
	if !ok {
		s = newStatement(cardID, month)
	}
	s.ManualAmount = &amount
	s.IsPaid = s.PaidAmount.GreaterThanOrEqual(s.EffectiveAmount()) && !s.EffectiveAmount().IsZero()
	if s.IsPaid {
		s.IsUnbilled = false
	}
	return upsert(statements, s), s
}

// RecordPayment appends a discrete payment to the statement and recomputes
// the paid state. The running paid amount is clamped so it never exceeds the
// effective amount owed; once it reaches the effective amount the statement
// flips to paid and sheds its unbilled flag. A negative amount is rejected
// with no mutation. A zero payment is a no-op on the paid state.
func RecordPayment(statements []models.Statement, cardID, month string, amount decimal.Decimal, date time.Time) ([]models.Statement, error) {
	if amount.IsNegative() {
		return statements, &engerrors.NegativePaymentError{
			CardID: cardID,
			Month:  month,
			Amount: amount.StringFixed(2),
		}
	}

	s, ok := Find(statements, cardID, month)
	if !ok {
		s = newStatement(cardID, month)
	}

	if !amount.IsZero() {
		s.Payments = append(append([]models.PaymentRecord(nil), s.Payments...),
			models.PaymentRecord{Amount: amount, Date: date})
	}

	paid := s.PaidAmount.Add(amount)
	effective := s.EffectiveAmount()
	if !effective.IsZero() && paid.GreaterThan(effective) {
		paid = effective
	}
	s.PaidAmount = paid

	if !effective.IsZero() && s.PaidAmount.GreaterThanOrEqual(effective) {
		s.IsPaid = true
		s.IsUnbilled = false
	}

	log.WithFields(logrus.Fields{
		"card":    cardID,
		"month":   month,
		"payment": amount.StringFixed(2),
		"paid":    s.PaidAmount.StringFixed(2),
		"is_paid": s.IsPaid,
	}).Debug("Recorded statement payment")

	return upsert(statements, s), nil
}

// TogglePaid flips a statement's paid state. Marking a missing statement as
// paid synthesizes one using the supplied total (the card's installment and
// direct spend for the month) as the amount owed. Marking paid settles the
// full effective amount; marking unpaid resets it.
func TogglePaid(statements []models.Statement, cardID, month string, total decimal.Decimal, date time.Time) ([]models.Statement, models.Statement) {
	s, ok := Find(statements, cardID, month)
	if !ok {
		s = newStatement(cardID, month)
		s.Amount = total
	}

	if s.IsPaid {
		s.IsPaid = false
		s.PaidAmount = decimal.Zero
		s.Payments = nil
	} else {
		remaining := s.Remaining()
		s.IsPaid = true
		s.IsUnbilled = false
		s.PaidAmount = s.EffectiveAmount()
		if !remaining.IsZero() {
			s.Payments = append(append([]models.PaymentRecord(nil), s.Payments...),
				models.PaymentRecord{Amount: remaining, Date: date})
		}
	}

	return upsert(statements, s), s
}

// SetManualDueDate records a manual override of the statement's due date,
// which wins unconditionally over the card's computed due date.
func SetManualDueDate(statements []models.Statement, cardID, month string, due time.Time) ([]models.Statement, models.Statement) {
	s, ok := Find(statements, cardID, month)
	if !ok {
		s = newStatement(cardID, month)
	}
	s.ManualDueDate = &due
	return upsert(statements, s), s
}

// DeleteCard removes every statement belonging to the card. Deleting a card
// cascades here unconditionally; confirmation is a UI concern.
func DeleteCard(statements []models.Statement, cardID string) []models.Statement {
	out := make([]models.Statement, 0, len(statements))
	for _, s := range statements {
		if s.CardID != cardID {
			out = append(out, s)
		}
	}
	if removed := len(statements) - len(out); removed > 0 {
		log.WithFields(logrus.Fields{
			"card":    cardID,
			"removed": removed,
		}).Info("Cascaded statement deletion for card")
	}
	return out
}

// UnpaidTotal sums the remaining effective amounts of the profile's unpaid
// statements for a month across the given cards.
func UnpaidTotal(statements []models.Statement, cards []models.Card, month string) decimal.Decimal {
	total := decimal.Zero
	for _, c := range cards {
		s, ok := Find(statements, c.ID, month)
		if !ok || s.IsPaid {
			continue
		}
		total = total.Add(s.EffectiveAmount())
	}
	return total
}
