// Package balance handles the cash-position command
package balance

import (
	"time"

	"github.com/polykhel/billcycle/cmd/root"
	"github.com/polykhel/billcycle/internal/dateutils"
	"github.com/polykhel/billcycle/internal/store"
	"github.com/polykhel/billcycle/pkg/engine"

	"github.com/spf13/cobra"
)

var (
	profileID string
	asOf      string
)

// Cmd represents the balance command
var Cmd = &cobra.Command{
	Use:   "balance",
	Short: "Show running balance, month-end projection, and debt buffer",
	Long: `Compute a profile's running balance as of a date, the projected end-of-month
position, the month summary, and the debt buffer against unpaid statements.`,
	Run: balanceFunc,
}

func balanceFunc(cmd *cobra.Command, args []string) {
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
	month := dateutils.MonthKey(date)

	root.Log.Infof("Available now:      %s", eng.AvailableNow(profileID, date).StringFixed(2))
	root.Log.Infof("Projected month end: %s", eng.ProjectedEndOfMonth(profileID, date).StringFixed(2))

	summary, err := eng.MonthSummary(profileID, month)
	if err != nil {
		root.Log.Fatalf("Error summarizing month: %v", err)
	}
	root.Log.Infof("Month %s: income %s, expenses %s, net %s",
		month, summary.Income.StringFixed(2), summary.Expenses.StringFixed(2), summary.Net.StringFixed(2))

	buffer := eng.Buffer(profileID, month)
	root.Log.Infof("Debt buffer:        %s", buffer.StringFixed(2))
	if eng.IsDangerZone(profileID, month) {
		root.Log.Warn("Danger zone: unpaid statements exceed bank balance")
	}
}

func init() {
	Cmd.Flags().StringVarP(&profileID, "profile", "p", "", "Profile id (required)")
	Cmd.Flags().StringVarP(&asOf, "as-of", "d", "", "Reference date YYYY-MM-DD (default today)")
	_ = Cmd.MarkFlagRequired("profile")
}
