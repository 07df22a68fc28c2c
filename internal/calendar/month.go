package calendar

import "time"

// MonthLabelLayout renders month headers such as "Jan '24".
const MonthLabelLayout = "Jan '06"

// UnknownMonth labels week dates that cannot be parsed.
const UnknownMonth = "UNKNOWN"

// MonthHeader is one run of consecutive weeks in the same month.
type MonthHeader struct {
	Label string `json:"label"`
	Span  int    `json:"span"`
}

// GroupByMonth run-length encodes weekDates by month label, in order.
func GroupByMonth(weekDates []string) []MonthHeader {
	var out []MonthHeader
	for _, d := range weekDates {
		label := UnknownMonth
		if t, ok := ParseDate(d, time.UTC); ok {
			label = t.Format(MonthLabelLayout)
		}
		if n := len(out); n > 0 && out[n-1].Label == label {
			out[n-1].Span++
			continue
		}
		out = append(out, MonthHeader{Label: label, Span: 1})
	}
	return out
}
