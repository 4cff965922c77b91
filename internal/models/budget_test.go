package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetContains(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)

	openEnded := Budget{StartDate: start}
	assert.False(t, openEnded.Contains(start.AddDate(0, 0, -1)))
	assert.True(t, openEnded.Contains(start))
	assert.True(t, openEnded.Contains(start.AddDate(2, 0, 0)), "no end date means open-ended")

	bounded := Budget{StartDate: start, EndDate: &end}
	assert.True(t, bounded.Contains(end))
	assert.False(t, bounded.Contains(end.AddDate(0, 0, 1)))
}

func TestBudgetAllocationFor(t *testing.T) {
	b := Budget{
		Allocations: []CategoryAllocation{
			{Category: "Dining", Allocated: decimal.NewFromInt(500)},
		},
	}

	a, ok := b.AllocationFor("Dining")
	require.True(t, ok)
	assert.True(t, a.Allocated.Equal(decimal.NewFromInt(500)))

	_, ok = b.AllocationFor("Transport")
	assert.False(t, ok)
}
