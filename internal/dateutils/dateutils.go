// Package dateutils provides the calendar-day date operations the engine is
// built on. All computations are timezone-naive: dates are normalized to
// midnight UTC and emitted as plain day strings so results are deterministic
// regardless of execution locale.
package dateutils

import (
	"fmt"
	"strings"
	"time"

	"github.com/polykhel/billcycle/internal/config"
	"github.com/sirupsen/logrus"
)

// Use the centralized logger from config package
var log = config.Logger

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Common layout constants used throughout the application
const (
	DayLayout   = "2006-01-02"
	MonthLayout = "2006-01"
)

// CommonFormats is a list of formats to try when parsing loosely formatted dates
var CommonFormats = []string{
	DayLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02.01.2006",
	"02/01/2006",
	"01/02/2006",
	"2-Jan-2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// Day normalizes a time to calendar-day precision (midnight UTC).
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay attempts to parse a date string using multiple common formats.
// The result is normalized to calendar-day precision.
func ParseDay(dateStr string) (time.Time, error) {
	cleaned := strings.TrimSpace(dateStr)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}
	for _, format := range CommonFormats {
		if t, err := time.Parse(format, cleaned); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// FormatDay formats a time as a plain calendar-day string (YYYY-MM-DD).
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// MonthKey returns the month identifier (YYYY-MM) of a date.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// ParseMonthKey parses a YYYY-MM month identifier into the first day of that month.
func ParseMonthKey(key string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, strings.TrimSpace(key))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month key '%s': %w", key, err)
	}
	return Day(t), nil
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns the last day of the month for a given date
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, -1)
}

// DaysInMonth returns the number of days in the month containing t.
func DaysInMonth(t time.Time) int {
	return EndOfMonth(t).Day()
}

// ClampDay clamps a configured day-of-month (1-31) into the month containing
// t, so that e.g. day 31 resolves to Feb 28 in a non-leap February.
func ClampDay(day int, t time.Time) int {
	if day < 1 {
		return 1
	}
	if max := DaysInMonth(t); day > max {
		return max
	}
	return day
}

// DateInMonth returns the date at the given day-of-month within the month
// containing t, clamping the day into the month's valid range.
func DateInMonth(day int, t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), ClampDay(day, t), 0, 0, 0, 0, time.UTC)
}

// AddMonths shifts a date by n calendar months, keeping the start of month.
// The input is truncated to its month first so day-of-month overflow cannot
// skip a month (Go normalizes Jan 31 + 1 month to Mar 2/3).
func AddMonths(t time.Time, n int) time.Time {
	return StartOfMonth(t).AddDate(0, n, 0)
}

// MonthsBetween returns the whole calendar-month difference from 'from' to
// 'to' (negative when 'to' precedes 'from'). Days of month are ignored.
func MonthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// SameDay reports whether two dates fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// OnOrBefore reports whether a falls on or before b at calendar-day precision.
func OnOrBefore(a, b time.Time) bool {
	return !Day(a).After(Day(b))
}

// OnOrAfter reports whether a falls on or after b at calendar-day precision.
func OnOrAfter(a, b time.Time) bool {
	return !Day(a).Before(Day(b))
}

// WithinRange reports whether t falls inside [start, end] inclusive at
// calendar-day precision.
func WithinRange(t, start, end time.Time) bool {
	return OnOrAfter(t, start) && OnOrBefore(t, end)
}

// QuarterStart returns the first day of the calendar quarter containing t.
func QuarterStart(t time.Time) time.Time {
	quarterMonth := ((int(t.Month())-1)/3)*3 + 1
	return time.Date(t.Year(), time.Month(quarterMonth), 1, 0, 0, 0, 0, time.UTC)
}

// YearStart returns the first day of the calendar year containing t.
func YearStart(t time.Time) time.Time {
	return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
}

// CompareDays compares two dates at calendar-day precision and returns
//
//	-1 if a is before b
//	 0 if a equals b
//	 1 if a is after b
func CompareDays(a, b time.Time) int {
	a, b = Day(a), Day(b)
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}
