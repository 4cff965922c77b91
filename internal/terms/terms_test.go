package terms

import (
	"testing"
	"time"

	"github.com/polykhel/billcycle/internal/models"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCurrentTerm(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		asOf     time.Time
		expected int
	}{
		{"same month is term one", day(2024, time.January, 5), day(2024, time.January, 25), 1},
		{"next month is term two", day(2024, time.January, 25), day(2024, time.February, 1), 2},
		{"six months in is term seven", day(2023, time.August, 15), day(2024, time.February, 15), 7},
		{"across year boundary", day(2023, time.November, 1), day(2024, time.January, 31), 3},
		{"start after reference floors at one", day(2024, time.June, 1), day(2024, time.January, 1), 1},
		{"start far after reference floors at one", day(2030, time.January, 1), day(2024, time.January, 1), 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CurrentTerm(tc.start, tc.asOf))
		})
	}
}

// Term floor: any start date after the reference date still reports term 1.
func TestCurrentTermNeverBelowOne(t *testing.T) {
	ref := day(2024, time.March, 15)
	for months := 0; months < 48; months++ {
		start := ref.AddDate(0, months, 0)
		term := CurrentTerm(start, ref)
		assert.GreaterOrEqual(t, term, 1, "start=%s", start)
	}
}

func TestCurrentTermFromString(t *testing.T) {
	asOf := day(2024, time.February, 10)

	assert.Equal(t, 7, CurrentTermFromString("2023-08-15", asOf))
	assert.Equal(t, 1, CurrentTermFromString("garbage", asOf), "unparsable start yields term 1")
	assert.Equal(t, 1, CurrentTermFromString("", asOf))
}

func TestRuleTerm(t *testing.T) {
	asOf := day(2024, time.February, 10)

	t.Run("nil rule", func(t *testing.T) {
		assert.Equal(t, 1, RuleTerm(nil, asOf))
	})

	t.Run("recomputed from start date", func(t *testing.T) {
		rule := &models.RecurringRule{
			Type:        models.RuleInstallment,
			StartDate:   day(2023, time.August, 10),
			CurrentTerm: 3, // stale stored value must be ignored
		}
		assert.Equal(t, 7, RuleTerm(rule, asOf))
	})

	t.Run("manual term wins", func(t *testing.T) {
		rule := &models.RecurringRule{
			Type:        models.RuleInstallment,
			StartDate:   day(2023, time.August, 10),
			CurrentTerm: 3,
			ManualTerm:  true,
		}
		assert.Equal(t, 3, RuleTerm(rule, asOf))
	})

	t.Run("zero start date", func(t *testing.T) {
		rule := &models.RecurringRule{Type: models.RuleInstallment}
		assert.Equal(t, 1, RuleTerm(rule, asOf))
	})
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name        string
		currentTerm int
		totalTerms  int
		expected    int
	}{
		{"seven of twelve", 7, 12, 58},
		{"one of twelve", 1, 12, 8},
		{"complete", 12, 12, 100},
		{"past the end clamps", 15, 12, 100},
		{"half", 6, 12, 50},
		{"zero total terms", 5, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Progress(tc.currentTerm, tc.totalTerms))
		})
	}
}

func TestIsCompleted(t *testing.T) {
	assert.False(t, IsCompleted(7, 12))
	assert.True(t, IsCompleted(12, 12))
	assert.True(t, IsCompleted(13, 12))
	assert.False(t, IsCompleted(1, 0), "zero total terms never completes")
}
