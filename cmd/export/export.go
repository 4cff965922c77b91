// Package export handles CSV export commands
package export

import (
	"github.com/polykhel/billcycle/cmd/root"
	"github.com/polykhel/billcycle/internal/store"

	"github.com/spf13/cobra"
)

var (
	transactionsFile string
	statementsFile   string
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export transactions and statements to CSV",
	Long: `Write the snapshot's viewable transactions and statement ledger rows to CSV
files, preserving record shapes field-for-field.`,
	Run: exportFunc,
}

func exportFunc(cmd *cobra.Command, args []string) {
	snapshot, err := store.Load(root.DataFile)
	if err != nil {
		root.Log.Fatalf("Error loading snapshot: %v", err)
	}

	if transactionsFile == "" && statementsFile == "" {
		root.Log.Fatal("Nothing to do: pass --transactions and/or --statements")
	}

	if transactionsFile != "" {
		if err := store.ExportTransactionsCSV(snapshot.Transactions, transactionsFile); err != nil {
			root.Log.Fatalf("Error exporting transactions: %v", err)
		}
	}
	if statementsFile != "" {
		if err := store.ExportStatementsCSV(snapshot.Statements, statementsFile); err != nil {
			root.Log.Fatalf("Error exporting statements: %v", err)
		}
	}
	root.Log.Info("Export completed successfully!")
}

func init() {
	Cmd.Flags().StringVarP(&transactionsFile, "transactions", "t", "", "Output CSV file for transactions")
	Cmd.Flags().StringVarP(&statementsFile, "statements", "s", "", "Output CSV file for statements")
}
