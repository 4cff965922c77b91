// Package engine exposes the billing-cycle and ledger computations over a
// loaded record snapshot for external callers. Every method is a pure read
// of the snapshot or returns new records for the caller to persist; the
// engine holds no mutable state of its own.
package engine

import (
	"time"

	"github.com/polykhel/billcycle/internal/budget"
	"github.com/polykhel/billcycle/internal/classify"
	"github.com/polykhel/billcycle/internal/cycle"
	"github.com/polykhel/billcycle/internal/engerrors"
	"github.com/polykhel/billcycle/internal/ledger"
	"github.com/polykhel/billcycle/internal/loan"
	"github.com/polykhel/billcycle/internal/models"
	"github.com/polykhel/billcycle/internal/project"
	"github.com/polykhel/billcycle/internal/store"
	"github.com/shopspring/decimal"
)

// Engine wraps a record snapshot with the derived-view computations.
type Engine struct {
	snapshot *store.Snapshot
}

// New creates an engine over a snapshot. The snapshot is treated as an
// immutable input; re-create the engine after the caller persists changes.
func New(snapshot *store.Snapshot) *Engine {
	if snapshot == nil {
		snapshot = &store.Snapshot{}
	}
	return &Engine{snapshot: snapshot}
}

// Snapshot returns the underlying record collections.
func (e *Engine) Snapshot() *store.Snapshot {
	return e.snapshot
}

func (e *Engine) card(cardID string) (models.Card, bool) {
	for _, c := range e.snapshot.Cards {
		if c.ID == cardID {
			return c, true
		}
	}
	return models.Card{}, false
}

// CardLabel returns the display name of a card, recovering referential
// misses with an "Unknown Card" label rather than an error.
func (e *Engine) CardLabel(cardID string) string {
	if c, ok := e.card(cardID); ok {
		return c.Name
	}
	return engerrors.UnknownLabel("Card")
}

// StatementPeriod resolves the statement period covering the transactions
// that settle into the card's given payment month (YYYY-MM).
func (e *Engine) StatementPeriod(cardID, paymentMonth string) (cycle.Period, error) {
	c, ok := e.card(cardID)
	if !ok {
		return cycle.Period{}, &engerrors.NotFoundError{Kind: "card", ID: cardID}
	}
	return cycle.StatementPeriod(c, paymentMonth)
}

// SettlementMonth returns the settlement month key whose statement ledger
// row is paid in the given payment month for the card.
func (e *Engine) SettlementMonth(cardID, paymentMonth string) (string, error) {
	c, ok := e.card(cardID)
	if !ok {
		return "", &engerrors.NotFoundError{Kind: "card", ID: cardID}
	}
	return cycle.SettlementMonthKey(c, paymentMonth)
}

// PaymentMonth returns the payment month a transaction dated on the given
// day is billed against for the card.
func (e *Engine) PaymentMonth(cardID string, date time.Time) (string, error) {
	c, ok := e.card(cardID)
	if !ok {
		return "", &engerrors.NotFoundError{Kind: "card", ID: cardID}
	}
	return cycle.PaymentMonth(c, date), nil
}

// DueDate returns the payment due date for a charge on the given date,
// honoring any manual override on the settlement month's statement.
func (e *Engine) DueDate(cardID string, date time.Time) (time.Time, error) {
	c, ok := e.card(cardID)
	if !ok {
		return time.Time{}, &engerrors.NotFoundError{Kind: "card", ID: cardID}
	}
	return cycle.DueDate(c, date, e.snapshot.Statements), nil
}

// StatementTransactions returns the card's viewable transactions inside the
// statement period for the payment month.
func (e *Engine) StatementTransactions(cardID, paymentMonth string) ([]models.Transaction, error) {
	c, ok := e.card(cardID)
	if !ok {
		return nil, &engerrors.NotFoundError{Kind: "card", ID: cardID}
	}
	return classify.ForStatementPeriod(e.snapshot.Transactions, c, paymentMonth)
}

// StatementTotal sums the card's statement-period spend for the payment
// month: expenses minus refunds, charges missing referenced records counted
// anyway.
func (e *Engine) StatementTotal(cardID, paymentMonth string) (decimal.Decimal, error) {
	ts, err := e.StatementTransactions(cardID, paymentMonth)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, t := range ts {
		if t.IsIncome() {
			total = total.Sub(t.Amount)
		} else {
			total = total.Add(t.Amount)
		}
	}
	return total.Round(2), nil
}

func (e *Engine) projectorInputs() project.Inputs {
	return project.Inputs{
		Accounts:     e.snapshot.Accounts,
		Balances:     e.snapshot.Balances,
		Transactions: e.snapshot.Transactions,
		Statements:   e.snapshot.Statements,
		Cards:        e.snapshot.Cards,
	}
}

// RunningBalance returns the profile's tracked cash position as of a date.
func (e *Engine) RunningBalance(profileID string, date time.Time) decimal.Decimal {
	return project.RunningBalance(e.projectorInputs(), profileID, date)
}

// AvailableNow returns the profile's current liquid balance.
func (e *Engine) AvailableNow(profileID string, now time.Time) decimal.Decimal {
	return project.AvailableNow(e.projectorInputs(), profileID, now)
}

// ProjectedEndOfMonth returns the profile's projected month-end position.
func (e *Engine) ProjectedEndOfMonth(profileID string, now time.Time) decimal.Decimal {
	return project.ProjectedEndOfMonth(e.projectorInputs(), profileID, now)
}

// Buffer returns bank balance minus unpaid statements for the month.
func (e *Engine) Buffer(profileID, month string) decimal.Decimal {
	return project.Buffer(e.projectorInputs(), profileID, month)
}

// IsDangerZone reports whether unpaid statements exceed the bank balance.
func (e *Engine) IsDangerZone(profileID, month string) bool {
	return project.IsDangerZone(e.projectorInputs(), profileID, month)
}

// MonthSummary totals the profile's income and expenses for a month.
func (e *Engine) MonthSummary(profileID, month string) (project.MonthSummary, error) {
	return project.Summarize(e.snapshot.Transactions, profileID, month)
}

// BudgetStatus derives each allocation's spend and alerts for the period
// containing the date.
func (e *Engine) BudgetStatus(budgetID string, date time.Time) ([]budget.AllocationStatus, error) {
	for _, b := range e.snapshot.Budgets {
		if b.ID == budgetID {
			return budget.WithSpending(b, e.snapshot.Transactions, date), nil
		}
	}
	return nil, &engerrors.NotFoundError{Kind: "budget", ID: budgetID}
}

// ProcessRollover carries a budget's unspent allocation into the following
// period, returning the created or updated next-period budget for the caller
// to persist.
func (e *Engine) ProcessRollover(budgetID string, fromDate time.Time) (budget.RolloverResult, error) {
	for _, b := range e.snapshot.Budgets {
		if b.ID == budgetID {
			return budget.ProcessRollover(b, e.snapshot.Budgets, e.snapshot.Transactions, fromDate), nil
		}
	}
	return budget.RolloverResult{}, &engerrors.NotFoundError{Kind: "budget", ID: budgetID}
}

// RecomputeLoan returns the plan with its derived fields recalculated.
func (e *Engine) RecomputeLoan(plan models.LoanPlan, asOf time.Time) models.LoanPlan {
	return loan.Recompute(plan, e.snapshot.Transactions, asOf)
}

// RecordPayment applies a payment to a (card, month) statement and returns
// the updated statement set for the caller to persist.
func (e *Engine) RecordPayment(cardID, month string, amount decimal.Decimal, date time.Time) ([]models.Statement, error) {
	return ledger.RecordPayment(e.snapshot.Statements, cardID, month, amount, date)
}

// DeleteCard removes a card and cascades to its statements, returning the
// updated collections for the caller to persist.
func (e *Engine) DeleteCard(cardID string) ([]models.Card, []models.Statement) {
	cards := make([]models.Card, 0, len(e.snapshot.Cards))
	for _, c := range e.snapshot.Cards {
		if c.ID != cardID {
			cards = append(cards, c)
		}
	}
	return cards, ledger.DeleteCard(e.snapshot.Statements, cardID)
}
