package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod represents the cadence a budget resets on
type BudgetPeriod string

const (
	PeriodMonthly   BudgetPeriod = "monthly"
	PeriodQuarterly BudgetPeriod = "quarterly"
	PeriodYearly    BudgetPeriod = "yearly"
)

// CategoryAllocation is the amount allocated to one spending category within
// a budget period.
type CategoryAllocation struct {
	Category  string          `json:"category" yaml:"category"`
	Allocated decimal.Decimal `json:"allocated" yaml:"allocated"`
}

// Budget holds a profile's category allocations for a repeating period.
//
// Budgets are created by user action and mutated on rollover; they are never
// deleted automatically. LastRolloverFrom records the closing period key of
// the most recent rollover applied to this budget, so re-running a rollover
// for the same closing period is a no-op.
type Budget struct {
	ID        string       `json:"id" yaml:"id"`
	ProfileID string       `json:"profile_id" yaml:"profile_id"`
	Period    BudgetPeriod `json:"period" yaml:"period"`

	StartDate time.Time  `json:"start_date" yaml:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty" yaml:"end_date,omitempty"`

	Allocations []CategoryAllocation `json:"allocations" yaml:"allocations"`

	RolloverUnspent bool `json:"rollover_unspent,omitempty" yaml:"rollover_unspent,omitempty"`
	// AlertThreshold is the utilization percentage at which a category alert fires.
	AlertThreshold int `json:"alert_threshold,omitempty" yaml:"alert_threshold,omitempty"`

	LastRolloverFrom string `json:"last_rollover_from,omitempty" yaml:"last_rollover_from,omitempty"`
}

// AllocationFor returns the allocation for a category and whether it exists.
func (b Budget) AllocationFor(category string) (CategoryAllocation, bool) {
	for _, a := range b.Allocations {
		if a.Category == category {
			return a, true
		}
	}
	return CategoryAllocation{}, false
}

// Contains reports whether a date falls inside the budget's active lifetime.
func (b Budget) Contains(date time.Time) bool {
	if date.Before(b.StartDate) {
		return false
	}
	if b.EndDate != nil && date.After(*b.EndDate) {
		return false
	}
	return true
}
