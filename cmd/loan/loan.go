// Package loan handles the loan affordability command
package loan

import (
	"time"

	"github.com/polykhel/billcycle/cmd/root"
	"github.com/polykhel/billcycle/internal/dateutils"
	"github.com/polykhel/billcycle/internal/loan"
	"github.com/polykhel/billcycle/internal/store"
	"github.com/polykhel/billcycle/pkg/engine"

	"github.com/spf13/cobra"
)

var (
	planID   string
	schedule bool
)

// Cmd represents the loan command
var Cmd = &cobra.Command{
	Use:   "loan",
	Short: "Recompute a loan plan's payment, cost, and affordability score",
	Long: `Amortize a stored loan plan, score its affordability against the profile's
trailing income and expense history, and optionally print the month-by-month
amortization schedule.`,
	Run: loanFunc,
}

func loanFunc(cmd *cobra.Command, args []string) {
	snapshot, err := store.Load(root.DataFile)
	if err != nil {
		root.Log.Fatalf("Error loading snapshot: %v", err)
	}
	eng := engine.New(snapshot)

	now := dateutils.Day(time.Now())
	for i, plan := range snapshot.Loans {
		if plan.ID != planID {
			continue
		}
		recomputed := eng.RecomputeLoan(plan, now)
		snapshot.Loans[i] = recomputed

		root.Log.Infof("Plan %s: monthly payment %s, total interest %s, total cost %s",
			recomputed.Name, recomputed.MonthlyPayment.StringFixed(2),
			recomputed.TotalInterest.StringFixed(2), recomputed.TotalCost.StringFixed(2))
		root.Log.Infof("Affordability score: %d/100", recomputed.AffordabilityScore)

		if schedule {
			for _, row := range loan.Schedule(recomputed, now) {
				root.Log.Infof("  term %3d  %s  payment %10s  principal %10s  interest %8s  remaining %12s",
					row.Term, dateutils.FormatDay(row.Date), row.Payment.StringFixed(2),
					row.Principal.StringFixed(2), row.Interest.StringFixed(2), row.Remaining.StringFixed(2))
			}
		}

		if err := store.Save(root.DataFile, snapshot); err != nil {
			root.Log.Fatalf("Error saving snapshot: %v", err)
		}
		return
	}

	root.Log.Fatalf("Loan plan not found: %s", planID)
}

func init() {
	Cmd.Flags().StringVarP(&planID, "plan", "p", "", "Loan plan id (required)")
	Cmd.Flags().BoolVarP(&schedule, "schedule", "s", false, "Print the amortization schedule")
	_ = Cmd.MarkFlagRequired("plan")
}
