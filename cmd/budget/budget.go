// Package budget handles the budget utilization and rollover commands
package budget

import (
	"time"

	"github.com/polykhel/billcycle/cmd/root"
	"github.com/polykhel/billcycle/internal/dateutils"
	"github.com/polykhel/billcycle/internal/store"
	"github.com/polykhel/billcycle/pkg/engine"

	"github.com/spf13/cobra"
)

var (
	budgetID string
	asOf     string
	rollover bool
)

// Cmd represents the budget command
var Cmd = &cobra.Command{
	Use:   "budget",
	Short: "Show budget utilization and process period rollover",
	Long: `Derive per-category spend, remaining allocation, and alerts for the period
containing a date. With --rollover, carry unspent allocation into the next
period's budget and save the updated snapshot.`,
	Run: budgetFunc,
}

func budgetFunc(cmd *cobra.Command, args []string) {
	snapshot, err := store.Load(root.DataFile)
	if err != nil {
		root.Log.Fatalf("Error loading snapshot: %v", err)
	}
	eng := engine.New(snapshot)

	date := dateutils.Day(time.Now())
	if asOf != "" {
		date, err = dateutils.ParseDay(asOf)
		if err != nil {
			root.Log.Fatalf("Invalid --as-of date: %v", err)
		}
	}

	statuses, err := eng.BudgetStatus(budgetID, date)
	if err != nil {
		root.Log.Fatalf("Error deriving budget status: %v", err)
	}
	for _, s := range statuses {
		root.Log.Infof("%-16s allocated %10s  spent %10s  remaining %10s  (%d%%)",
			s.Category, s.Allocated.StringFixed(2), s.Spent.StringFixed(2),
			s.Remaining.StringFixed(2), s.Percent)
		if s.Alert != "" {
			root.Log.Warn(s.Alert)
		}
	}

	if !rollover {
		return
	}

	result, err := eng.ProcessRollover(budgetID, date)
	if err != nil {
		root.Log.Fatalf("Error processing rollover: %v", err)
	}
	if result.Budget == nil {
		root.Log.Info("Rollover not enabled for this budget")
		return
	}

	// Persist the created or updated next-period budget.
	updated := false
	for i, b := range snapshot.Budgets {
		if b.ID == result.Budget.ID {
			snapshot.Budgets[i] = *result.Budget
			updated = true
			break
		}
	}
	if !updated {
		snapshot.Budgets = append(snapshot.Budgets, *result.Budget)
	}
	if err := store.Save(root.DataFile, snapshot); err != nil {
		root.Log.Fatalf("Error saving snapshot: %v", err)
	}
	if result.Created {
		root.Log.Infof("Created next period budget %s", result.Budget.ID)
	} else {
		root.Log.Infof("Updated next period budget %s", result.Budget.ID)
	}
}

func init() {
	Cmd.Flags().StringVarP(&budgetID, "budget", "b", "", "Budget id (required)")
	Cmd.Flags().StringVarP(&asOf, "as-of", "d", "", "Reference date YYYY-MM-DD (default today)")
	Cmd.Flags().BoolVarP(&rollover, "rollover", "r", false, "Process rollover into the next period")
	_ = Cmd.MarkFlagRequired("budget")
}
