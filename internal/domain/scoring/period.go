package scoring

import (
	"fmt"
	"time"
)

// Period is a labeled date range over which performance is computed,
// typically one calendar month.
type Period struct {
	Start time.Time `json:"startDate"`
	End   time.Time `json:"endDate"`
	Label string    `json:"label"`
}

// StartOfDay truncates a timestamp to local midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// CoercePeriod fills in the parts of a period the caller did not supply.
// A zero start/end defaults to the first/last day of the calendar month
// containing now; an empty label defaults to YYYY-MM of the month containing
// the window, so a back-dated window keeps its own upsert identity.
// Explicit overrides are taken as-is: an inverted window is not rejected,
// it simply behaves as an empty window and yields all-zero signals.
func CoercePeriod(now time.Time, start, end time.Time, label string) Period {
	if start.IsZero() {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
	if end.IsZero() {
		firstOfNext := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
		end = firstOfNext.AddDate(0, 0, -1)
	}
	if label == "" {
		label = fmt.Sprintf("%04d-%02d", start.Year(), int(start.Month()))
	}
	return Period{Start: start, End: end, Label: label}
}

// CountBusinessDays counts Monday-Friday calendar days between start and end
// inclusive. Returns at least 1 so downstream hour expectations never divide
// by zero.
func CountBusinessDays(start, end time.Time) int {
	count := 0
	for day := StartOfDay(start); !day.After(StartOfDay(end)); day = day.AddDate(0, 0, 1) {
		switch day.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	if count < 1 {
		return 1
	}
	return count
}

// OnTimeThreshold is the punctuality cutoff for a calendar day: 09:15 local.
func OnTimeThreshold(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 9, 15, 0, 0, day.Location())
}
