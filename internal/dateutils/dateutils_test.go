package dateutils

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLogger(t *testing.T) {
	customLogger := logrus.New()
	customLogger.SetLevel(logrus.DebugLevel)

	originalLogger := log
	defer func() {
		log = originalLogger
	}()

	SetLogger(customLogger)
	assert.Equal(t, customLogger, log)

	// A nil logger should not change the current logger.
	currentLogger := log
	SetLogger(nil)
	assert.Equal(t, currentLogger, log)
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		name       string
		dateStr    string
		expectedOk bool
		expectedY  int
		expectedM  time.Month
		expectedD  int
	}{
		{"ISO format", "2023-01-15", true, 2023, time.January, 15},
		{"European format", "15.01.2023", true, 2023, time.January, 15},
		{"full timestamp", "2023-01-15 10:30:45", true, 2023, time.January, 15},
		{"RFC3339", "2023-01-15T10:30:45Z", true, 2023, time.January, 15},
		{"with month name", "15-Jan-2023", true, 2023, time.January, 15},
		{"surrounding whitespace", "  2023-01-15  ", true, 2023, time.January, 15},
		{"empty string", "", false, 0, 0, 0},
		{"invalid format", "not a date", false, 0, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			date, err := ParseDay(tc.dateStr)
			if tc.expectedOk {
				require.NoError(t, err)
				assert.Equal(t, tc.expectedY, date.Year())
				assert.Equal(t, tc.expectedM, date.Month())
				assert.Equal(t, tc.expectedD, date.Day())
				// Time component stripped.
				assert.Equal(t, 0, date.Hour())
				assert.Equal(t, time.UTC, date.Location())
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2023-01", MonthKey(time.Date(2023, time.January, 15, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-12", MonthKey(time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)))
}

func TestParseMonthKey(t *testing.T) {
	parsed, err := ParseMonthKey("2024-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), parsed)

	_, err = ParseMonthKey("2024/02")
	assert.Error(t, err)

	_, err = ParseMonthKey("")
	assert.Error(t, err)
}

func TestStartAndEndOfMonth(t *testing.T) {
	mid := time.Date(2024, time.February, 14, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), StartOfMonth(mid))
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), EndOfMonth(mid))

	nonLeap := time.Date(2023, time.February, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 28, EndOfMonth(nonLeap).Day())
}

func TestClampDay(t *testing.T) {
	tests := []struct {
		name     string
		day      int
		in       time.Time
		expected int
	}{
		{"within range", 15, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), 15},
		{"clamped to leap February", 31, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), 29},
		{"clamped to non-leap February", 30, time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC), 28},
		{"clamped to short month", 31, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), 30},
		{"zero floors to one", 0, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ClampDay(tc.day, tc.in))
		})
	}
}

func TestAddMonths(t *testing.T) {
	// Day-of-month overflow must not skip a month.
	jan31 := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), AddMonths(jan31, 1))
	assert.Equal(t, time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC), AddMonths(jan31, -1))
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), AddMonths(jan31, 12))
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name     string
		from     time.Time
		to       time.Time
		expected int
	}{
		{"same month", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), 0},
		{"adjacent months", time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), 1},
		{"across year", time.Date(2023, time.November, 15, 0, 0, 0, 0, time.UTC), time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC), 3},
		{"negative", time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), -3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, MonthsBetween(tc.from, tc.to))
		})
	}
}

func TestWithinRange(t *testing.T) {
	start := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)

	assert.True(t, WithinRange(start, start, end), "start inclusive")
	assert.True(t, WithinRange(end, start, end), "end inclusive")
	assert.True(t, WithinRange(time.Date(2024, time.January, 15, 23, 59, 0, 0, time.UTC), start, end))
	assert.False(t, WithinRange(start.AddDate(0, 0, -1), start, end))
	assert.False(t, WithinRange(end.AddDate(0, 0, 1), start, end))
}

func TestQuarterStart(t *testing.T) {
	tests := []struct {
		month    time.Month
		expected time.Month
	}{
		{time.January, time.January},
		{time.March, time.January},
		{time.April, time.April},
		{time.June, time.April},
		{time.July, time.July},
		{time.December, time.October},
	}

	for _, tc := range tests {
		got := QuarterStart(time.Date(2024, tc.month, 15, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, tc.expected, got.Month())
		assert.Equal(t, 1, got.Day())
	}
}

func TestCompareDays(t *testing.T) {
	a := time.Date(2024, time.January, 15, 23, 0, 0, 0, time.UTC)
	b := time.Date(2024, time.January, 15, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, CompareDays(a, b), "same day ignores time")
	assert.Equal(t, -1, CompareDays(a, b.AddDate(0, 0, 1)))
	assert.Equal(t, 1, CompareDays(a, b.AddDate(0, 0, -1)))
}
