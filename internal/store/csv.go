package store

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/polykhel/billcycle/internal/classify"
	"github.com/polykhel/billcycle/internal/dateutils"
	"github.com/polykhel/billcycle/internal/models"
)

// Delimiter is the rune used to separate CSV values in output files
var Delimiter rune = ','

// SetDelimiter allows setting the delimiter for CSV output
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// transactionRow is the flattened CSV projection of a transaction. Field
// shapes round-trip the record field-for-field; buckets are derived.
type transactionRow struct {
	ID          string `csv:"ID"`
	ProfileID   string `csv:"Profile"`
	Date        string `csv:"Date"`
	Type        string `csv:"Type"`
	Amount      string `csv:"Amount"`
	Category    string `csv:"Category"`
	Description string `csv:"Description"`
	CardID      string `csv:"Card"`
	AccountID   string `csv:"Account"`
	Bucket      string `csv:"Bucket"`
}

// statementRow is the flattened CSV projection of a statement.
type statementRow struct {
	CardID          string `csv:"Card"`
	Month           string `csv:"Month"`
	Amount          string `csv:"Amount"`
	EffectiveAmount string `csv:"EffectiveAmount"`
	PaidAmount      string `csv:"PaidAmount"`
	IsPaid          bool   `csv:"Paid"`
	IsUnbilled      bool   `csv:"Unbilled"`
}

func writeCSV(rows interface{}, csvFile string) error {
	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			log.Warnf("Error closing CSV file: %v", cerr)
		}
	}()

	writer := csv.NewWriter(file)
	writer.Comma = Delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(writer)); err != nil {
		return fmt.Errorf("error writing CSV: %w", err)
	}
	return nil
}

// ExportTransactionsCSV writes the viewable transactions to a CSV file.
// Parent installment records never appear in exports.
func ExportTransactionsCSV(ts []models.Transaction, csvFile string) error {
	viewable := classify.Viewable(ts)
	rows := make([]transactionRow, 0, len(viewable))
	for _, t := range viewable {
		rows = append(rows, transactionRow{
			ID:          t.ID,
			ProfileID:   t.ProfileID,
			Date:        dateutils.FormatDay(t.Date),
			Type:        string(t.Type),
			Amount:      t.Amount.StringFixed(2),
			Category:    t.Category,
			Description: t.Description,
			CardID:      t.CardID,
			AccountID:   t.AccountID,
			Bucket:      string(classify.Classify(t)),
		})
	}

	if err := writeCSV(&rows, csvFile); err != nil {
		return err
	}
	log.Infof("Exported %d transactions to %s", len(rows), csvFile)
	return nil
}

// ExportStatementsCSV writes the statement ledger to a CSV file.
func ExportStatementsCSV(statements []models.Statement, csvFile string) error {
	rows := make([]statementRow, 0, len(statements))
	for _, s := range statements {
		rows = append(rows, statementRow{
			CardID:          s.CardID,
			Month:           s.Month,
			Amount:          s.Amount.StringFixed(2),
			EffectiveAmount: s.EffectiveAmount().StringFixed(2),
			PaidAmount:      s.PaidAmount.StringFixed(2),
			IsPaid:          s.IsPaid,
			IsUnbilled:      s.IsUnbilled,
		})
	}

	if err := writeCSV(&rows, csvFile); err != nil {
		return err
	}
	log.Infof("Exported %d statements to %s", len(rows), csvFile)
	return nil
}
