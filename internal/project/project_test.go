package project

import (
	"testing"
	"time"

	"github.com/polykhel/billcycle/internal/ledger"
	"github.com/polykhel/billcycle/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func baseInputs() Inputs {
	return Inputs{
		Accounts: []models.BankAccount{
			{ID: "acct-1", ProfileID: "p1", Name: "Checking", InitialBalance: dec(1000)},
			{ID: "acct-2", ProfileID: "p1", Name: "Savings", InitialBalance: dec(5000)},
			{ID: "acct-9", ProfileID: "p2", Name: "Other", InitialBalance: dec(99999)},
		},
	}
}

func TestRunningBalanceFromInitialBalances(t *testing.T) {
	in := baseInputs()
	in.Transactions = []models.Transaction{
		{ID: "t1", ProfileID: "p1", Type: models.TypeIncome, Amount: dec(2500), AccountID: "acct-1", Date: day(2024, time.January, 5)},
		{ID: "t2", ProfileID: "p1", Type: models.TypeExpense, Amount: dec(300), AccountID: "acct-1", Date: day(2024, time.January, 10)},
		// No linked account: does not move tracked cash.
		{ID: "t3", ProfileID: "p1", Type: models.TypeExpense, Amount: dec(120), Date: day(2024, time.January, 11)},
		// After the target date.
		{ID: "t4", ProfileID: "p1", Type: models.TypeExpense, Amount: dec(700), AccountID: "acct-1", Date: day(2024, time.January, 20)},
		// Other profile.
		{ID: "t5", ProfileID: "p2", Type: models.TypeExpense, Amount: dec(900), AccountID: "acct-9", Date: day(2024, time.January, 5)},
	}

	got := RunningBalance(in, "p1", day(2024, time.January, 15))
	// 1000 + 5000 + 2500 - 300
	assert.True(t, got.Equal(dec(8200)), "got %s", got)
}

func TestRunningBalanceUsesSnapshotFloor(t *testing.T) {
	in := baseInputs()
	in.Balances = []models.BankBalance{
		{ID: "b1", ProfileID: "p1", Month: "2024-01", Balance: dec(4000)},
	}
	in.Transactions = []models.Transaction{
		{ID: "t1", ProfileID: "p1", Type: models.TypeExpense, Amount: dec(250), AccountID: "acct-1", Date: day(2024, time.January, 3)},
	}

	got := RunningBalance(in, "p1", day(2024, time.January, 15))
	assert.True(t, got.Equal(dec(3750)), "snapshot row wins over initial balances, got %s", got)
}

func TestRunningBalancePerAccountSnapshotsSummed(t *testing.T) {
	in := baseInputs()
	in.Balances = []models.BankBalance{
		{ID: "b1", ProfileID: "p1", Month: "2024-01", AccountID: "acct-1", Balance: dec(1200)},
		{ID: "b2", ProfileID: "p1", Month: "2024-01", AccountID: "acct-2", Balance: dec(4800)},
		// Profile-level row ignored when per-account rows exist.
		{ID: "b3", ProfileID: "p1", Month: "2024-01", Balance: dec(70)},
	}

	got := RunningBalance(in, "p1", day(2024, time.January, 15))
	assert.True(t, got.Equal(dec(6000)), "got %s", got)
}

func TestRunningBalanceTransferSubtractsFee(t *testing.T) {
	in := baseInputs()
	in.Transactions = []models.Transaction{
		{
			ID: "t1", ProfileID: "p1", Type: models.TypeExpense, Amount: dec(500),
			AccountID: "acct-1", ToAccountID: "acct-2", TransferFee: dec(15),
			Date: day(2024, time.January, 5),
		},
	}

	got := RunningBalance(in, "p1", day(2024, time.January, 15))
	// Principal nets out between tracked accounts; only the fee leaves.
	assert.True(t, got.Equal(dec(5985)), "got %s", got)
}

func TestRunningBalanceIncludesArrivedScheduledEntries(t *testing.T) {
	in := baseInputs()
	in.Transactions = []models.Transaction{
		{
			// Nominal ledger date is in the future, but the subscription's
			// next occurrence has arrived.
			ID: "sub-1", ProfileID: "p1", Type: models.TypeExpense, Amount: dec(45),
			AccountID: "acct-1", Date: day(2024, time.February, 1),
			IsRecurring: true,
			RecurringRule: &models.RecurringRule{
				Type:           models.RuleSubscription,
				Frequency:      models.FrequencyMonthly,
				NextOccurrence: day(2024, time.January, 10),
			},
		},
		{
			// Still genuinely future.
			ID: "sub-2", ProfileID: "p1", Type: models.TypeExpense, Amount: dec(60),
			AccountID: "acct-1", Date: day(2024, time.February, 5),
			IsRecurring: true,
			RecurringRule: &models.RecurringRule{
				Type:           models.RuleSubscription,
				Frequency:      models.FrequencyMonthly,
				NextOccurrence: day(2024, time.February, 5),
			},
		},
	}

	got := RunningBalance(in, "p1", day(2024, time.January, 15))
	// 6000 - 45
	assert.True(t, got.Equal(dec(5955)), "got %s", got)
}

func TestRunningBalanceDeduplicatesById(t *testing.T) {
	in := baseInputs()
	in.Transactions = []models.Transaction{
		{
			// Past-dated AND schedule-arrived: counted once.
			ID: "inst-1", ProfileID: "p1", Type: models.TypeExpense, Amount: dec(1000),
			AccountID: "acct-1", Date: day(2024, time.January, 5),
			IsRecurring: true,
			RecurringRule: &models.RecurringRule{
				Type:      models.RuleInstallment,
				StartDate: day(2024, time.January, 5),
			},
		},
	}

	got := RunningBalance(in, "p1", day(2024, time.January, 15))
	assert.True(t, got.Equal(dec(5000)), "got %s", got)
}

func TestRunningBalanceRounds(t *testing.T) {
	in := Inputs{
		Accounts: []models.BankAccount{{ID: "a", ProfileID: "p1", InitialBalance: dec(100)}},
		Transactions: []models.Transaction{
			{ID: "t1", ProfileID: "p1", Type: models.TypeExpense, Amount: decimal.RequireFromString("33.333"), AccountID: "a", Date: day(2024, time.January, 5)},
		},
	}
	got := RunningBalance(in, "p1", day(2024, time.January, 15))
	assert.Equal(t, "66.67", got.StringFixed(2))
}

func TestProjectedEndOfMonth(t *testing.T) {
	in := baseInputs()
	now := day(2024, time.January, 15)
	in.Transactions = []models.Transaction{
		{ID: "t1", ProfileID: "p1", Type: models.TypeExpense, Amount: dec(500), AccountID: "acct-1", Date: day(2024, time.January, 10)},
		// Future this month: counted in the projection even without an account.
		{ID: "t2", ProfileID: "p1", Type: models.TypeIncome, Amount: dec(3000), Date: day(2024, time.January, 25)},
		{ID: "t3", ProfileID: "p1", Type: models.TypeExpense, Amount: dec(800), Date: day(2024, time.January, 28)},
		// Next month: out of scope.
		{ID: "t4", ProfileID: "p1", Type: models.TypeExpense, Amount: dec(9999), Date: day(2024, time.February, 2)},
	}

	got := ProjectedEndOfMonth(in, "p1", now)
	// (6000 - 500) + 3000 - 800
	assert.True(t, got.Equal(dec(7700)), "got %s", got)
}

func TestAvailableNowIsLiquidOnly(t *testing.T) {
	in := baseInputs()
	now := day(2024, time.January, 15)
	in.Transactions = []models.Transaction{
		{ID: "t1", ProfileID: "p1", Type: models.TypeIncome, Amount: dec(3000), Date: day(2024, time.January, 25)},
	}

	assert.True(t, AvailableNow(in, "p1", now).Equal(dec(6000)),
		"future income is not available right now")
}

func TestBufferAndDangerZone(t *testing.T) {
	in := baseInputs()
	in.Cards = []models.Card{
		{ID: "card-1", ProfileID: "p1", CycleCloseDay: 20, PaymentDueDay: 12},
		{ID: "card-9", ProfileID: "p2", CycleCloseDay: 5, PaymentDueDay: 25},
	}

	var statements []models.Statement
	statements, _ = ledger.SetAmount(statements, "card-1", "2024-01", dec(2500))
	statements, _ = ledger.SetAmount(statements, "card-9", "2024-01", dec(100000))
	in.Statements = statements

	buffer := Buffer(in, "p1", "2024-01")
	assert.True(t, buffer.Equal(dec(3500)), "6000 - 2500, got %s", buffer)
	assert.False(t, IsDangerZone(in, "p1", "2024-01"))

	// Push the unpaid total past the bank balance.
	statements, _ = ledger.SetAmount(statements, "card-1", "2024-01", dec(7000))
	in.Statements = statements
	assert.True(t, IsDangerZone(in, "p1", "2024-01"))
}

func TestSummarize(t *testing.T) {
	ts := []models.Transaction{
		{ID: "t1", ProfileID: "p1", Type: models.TypeIncome, Amount: dec(4000), Date: day(2024, time.January, 1)},
		{ID: "t2", ProfileID: "p1", Type: models.TypeExpense, Amount: dec(1500), Date: day(2024, time.January, 20)},
		{ID: "t3", ProfileID: "p1", Type: models.TypeExpense, Amount: dec(200), AccountID: "a", ToAccountID: "b", Date: day(2024, time.January, 21)},
		{ID: "t4", ProfileID: "p1", Type: models.TypeExpense, Amount: dec(999), Date: day(2024, time.February, 1)},
	}

	summary, err := Summarize(ts, "p1", "2024-01")
	require.NoError(t, err)
	assert.True(t, summary.Income.Equal(dec(4000)))
	assert.True(t, summary.Expenses.Equal(dec(1500)), "transfer excluded")
	assert.True(t, summary.Net.Equal(dec(2500)))

	_, err = Summarize(ts, "p1", "bogus")
	assert.Error(t, err)
}
