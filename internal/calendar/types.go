// Package calendar maps date-ranged timeline events onto a weekly grid.
//
// Dates are ISO YYYY-MM-DD strings throughout, so lexical comparison is
// date comparison. The week sequence is supplied by the caller; nothing in
// the mapping reads the system clock.
package calendar

import "time"

// DateLayout is the ISO date format used for every date string.
const DateLayout = "2006-01-02"

// Task is one row of the timeline.
type Task struct {
	ID       string `json:"id"`
	Task     string `json:"task"`
	Category string `json:"category"`
}

// Event is a date range attached to a task. StartDate <= EndDate.
type Event struct {
	ID        string `json:"id"`
	TaskID    string `json:"task_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Label     string `json:"label"`
	Color     string `json:"color"`
}

// ParseDate parses an ISO date in loc.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders t as an ISO date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
