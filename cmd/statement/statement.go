// Package statement handles the statement inspection command
package statement

import (
	"github.com/polykhel/billcycle/cmd/root"
	"github.com/polykhel/billcycle/internal/dateutils"
	"github.com/polykhel/billcycle/internal/ledger"
	"github.com/polykhel/billcycle/internal/store"
	"github.com/polykhel/billcycle/pkg/engine"

	"github.com/spf13/cobra"
)

var (
	cardID       string
	paymentMonth string
)

// Cmd represents the statement command
var Cmd = &cobra.Command{
	Use:   "statement",
	Short: "Show a card's statement period, due transactions, and ledger row",
	Long: `Resolve a card's statement-period boundaries for a payment month, list the
transactions that settle into it, and show the statement ledger row.`,
	Run: statementFunc,
}

func statementFunc(cmd *cobra.Command, args []string) {
	snapshot, err := store.Load(root.DataFile)
	if err != nil {
		root.Log.Fatalf("Error loading snapshot: %v", err)
	}
	eng := engine.New(snapshot)

	period, err := eng.StatementPeriod(cardID, paymentMonth)
	if err != nil {
		root.Log.Fatalf("Error resolving statement period: %v", err)
	}
	root.Log.Infof("Card %s payment month %s: period %s to %s",
		eng.CardLabel(cardID), paymentMonth,
		dateutils.FormatDay(period.Start), dateutils.FormatDay(period.End))

	total, err := eng.StatementTotal(cardID, paymentMonth)
	if err != nil {
		root.Log.Fatalf("Error computing statement total: %v", err)
	}
	root.Log.Infof("Statement-period spend: %s", total.StringFixed(2))

	ts, err := eng.StatementTransactions(cardID, paymentMonth)
	if err != nil {
		root.Log.Fatalf("Error listing statement transactions: %v", err)
	}
	for _, t := range ts {
		root.Log.Infof("  %s  %-8s %10s  %s",
			dateutils.FormatDay(t.Date), t.Type, t.Amount.StringFixed(2), t.Description)
	}

	// Ledger rows are keyed by settlement month, not payment month.
	settlementMonth, err := eng.SettlementMonth(cardID, paymentMonth)
	if err != nil {
		root.Log.Fatalf("Error resolving settlement month: %v", err)
	}
	if s, ok := ledger.Find(snapshot.Statements, cardID, settlementMonth); ok {
		root.Log.Infof("Ledger row: owed %s, paid %s, is_paid=%t",
			s.EffectiveAmount().StringFixed(2), s.PaidAmount.StringFixed(2), s.IsPaid)
	}
}

func init() {
	Cmd.Flags().StringVarP(&cardID, "card", "c", "", "Card id (required)")
	Cmd.Flags().StringVarP(&paymentMonth, "month", "m", "", "Payment month YYYY-MM (required)")
	_ = Cmd.MarkFlagRequired("card")
	_ = Cmd.MarkFlagRequired("month")
}
