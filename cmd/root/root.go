// Package root contains the root command for the application
package root

import (
	"github.com/polykhel/billcycle/internal/budget"
	"github.com/polykhel/billcycle/internal/classify"
	"github.com/polykhel/billcycle/internal/config"
	"github.com/polykhel/billcycle/internal/cycle"
	"github.com/polykhel/billcycle/internal/dateutils"
	"github.com/polykhel/billcycle/internal/ledger"
	"github.com/polykhel/billcycle/internal/loan"
	"github.com/polykhel/billcycle/internal/project"
	"github.com/polykhel/billcycle/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// DataFile is the snapshot file every subcommand reads
	DataFile string

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "billcycle",
		Short: "A CLI tool to inspect billing cycles, statements, balances, budgets, and loans.",
		Long: `billcycle computes billing-cycle boundaries, statement ledgers, cash
projections, budget utilization, and loan affordability from a record snapshot.
It performs no network I/O; all computation runs against the local snapshot file.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to billcycle!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize and configure logging
			config.LoadEnv()
			Log = config.ConfigureLogging()

			// Set the configured logger for all engine packages
			dateutils.SetLogger(Log)
			cycle.SetLogger(Log)
			classify.SetLogger(Log)
			ledger.SetLogger(Log)
			project.SetLogger(Log)
			budget.SetLogger(Log)
			loan.SetLogger(Log)
			store.SetLogger(Log)
		},
	}
)

// Init configures the root command's persistent flags.
func Init() {
	Cmd.PersistentFlags().StringVarP(&DataFile, "data", "f", "billcycle.yaml", "Snapshot file with cards, transactions, statements, budgets, and loans")
}
