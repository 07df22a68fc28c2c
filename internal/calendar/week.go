package calendar

import "time"

// WeekClass positions a week relative to the current week.
type WeekClass string

const (
	WeekPast    WeekClass = "past"
	WeekCurrent WeekClass = "current"
	WeekFuture  WeekClass = "future"
)

// StartOfWeek returns midnight of the Sunday on or before t, in t's
// location.
func StartOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// ClassifyWeek reports whether date falls before, inside or after the
// Sunday-aligned week containing now.
func ClassifyWeek(date, now time.Time) WeekClass {
	start := StartOfWeek(now)
	switch {
	case date.Before(start):
		return WeekPast
	case date.Before(start.AddDate(0, 0, 7)):
		return WeekCurrent
	default:
		return WeekFuture
	}
}

// ClassifyWeekDate classifies an ISO date string in now's location.
// Unparseable dates are treated as future weeks.
func ClassifyWeekDate(date string, now time.Time) WeekClass {
	t, ok := ParseDate(date, now.Location())
	if !ok {
		return WeekFuture
	}
	return ClassifyWeek(t, now)
}

// WeekStarts returns the Sunday-aligned week dates covering [from, to].
// It returns nil when to is before from.
func WeekStarts(from, to time.Time) []string {
	if to.Before(from) {
		return nil
	}
	var out []string
	for d := StartOfWeek(from); !d.After(to); d = d.AddDate(0, 0, 7) {
		out = append(out, FormatDate(d))
	}
	return out
}
