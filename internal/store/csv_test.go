package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/polykhel/billcycle/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportTransactionsCSV(t *testing.T) {
	csvFile := filepath.Join(t.TempDir(), "transactions.csv")

	parent := models.Transaction{
		ID: "parent-1", ProfileID: "p1", Type: models.TypeExpense,
		Amount: decimal.NewFromInt(12000),
		Date:   time.Date(2023, time.August, 1, 0, 0, 0, 0, time.UTC),
		IsRecurring: true,
		RecurringRule: &models.RecurringRule{
			Type: models.RuleInstallment, TotalAmount: decimal.NewFromInt(12000), TotalTerms: 12,
		},
		BudgetImpacting: models.BoolPtr(false),
	}
	direct := models.Transaction{
		ID: "t1", ProfileID: "p1", Type: models.TypeExpense,
		Amount: decimal.RequireFromString("45.90"), Category: "Dining",
		Date: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, ExportTransactionsCSV([]models.Transaction{parent, direct}, csvFile))

	data, err := os.ReadFile(csvFile)
	require.NoError(t, err)
	content := string(data)

	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.Len(t, lines, 2, "header plus one row, parent excluded")
	assert.Contains(t, lines[0], "Bucket")
	assert.Contains(t, lines[1], "45.90")
	assert.Contains(t, lines[1], "2024-01-05")
	assert.NotContains(t, content, "parent-1")
}

func TestExportStatementsCSV(t *testing.T) {
	csvFile := filepath.Join(t.TempDir(), "statements.csv")

	manual := decimal.NewFromInt(1200)
	statements := []models.Statement{
		{
			ID: "s1", CardID: "card-1", Month: "2024-01",
			Amount: decimal.NewFromInt(1500), ManualAmount: &manual,
			PaidAmount: decimal.NewFromInt(400),
		},
	}

	require.NoError(t, ExportStatementsCSV(statements, csvFile))

	data, err := os.ReadFile(csvFile)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "card-1,2024-01,1500.00,1200.00,400.00")
}

func TestSetDelimiter(t *testing.T) {
	original := Delimiter
	defer SetDelimiter(original)

	SetDelimiter(';')
	csvFile := filepath.Join(t.TempDir(), "statements.csv")
	statements := []models.Statement{
		{ID: "s1", CardID: "card-1", Month: "2024-01", Amount: decimal.NewFromInt(100)},
	}

	require.NoError(t, ExportStatementsCSV(statements, csvFile))

	data, err := os.ReadFile(csvFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "card-1;2024-01")
}
