package aggregate

import (
	"strings"

	"github.com/hyperengineering/opsboard/internal/record"
)

// Predicate reports whether a record passes a filter.
type Predicate func(record.Record) bool

// All is the predicate used for inactive filters.
func All() Predicate {
	return func(record.Record) bool { return true }
}

// FilterRecords returns the records that pass every predicate, in input
// order. A nil predicate behaves like All.
func FilterRecords(records []record.Record, predicates ...Predicate) []record.Record {
	out := make([]record.Record, 0, len(records))
	for _, rec := range records {
		if matchAll(rec, predicates) {
			out = append(out, rec)
		}
	}
	return out
}

func matchAll(rec record.Record, predicates []Predicate) bool {
	for _, p := range predicates {
		if p != nil && !p(rec) {
			return false
		}
	}
	return true
}

// Search matches records where any of fields contains query,
// case-insensitive. With no fields every field is searched. A blank query
// matches everything.
func Search(query string, fields ...string) Predicate {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return All()
	}
	return func(rec record.Record) bool {
		names := fields
		if len(names) == 0 {
			names = rec.Names()
		}
		for _, name := range names {
			if strings.Contains(strings.ToLower(rec.String(name)), q) {
				return true
			}
		}
		return false
	}
}

// Equals matches records whose field equals value, case-insensitive and
// ignoring surrounding whitespace. A blank value or "all" matches
// everything.
func Equals(field, value string) Predicate {
	want := strings.TrimSpace(value)
	if want == "" || strings.EqualFold(want, "all") {
		return All()
	}
	return func(rec record.Record) bool {
		return strings.EqualFold(strings.TrimSpace(rec.String(field)), want)
	}
}

// NumberRange matches records whose numeric field lies in [min, max].
// A nil bound is open. Malformed values count as 0.
func NumberRange(field string, min, max *float64) Predicate {
	if min == nil && max == nil {
		return All()
	}
	return func(rec record.Record) bool {
		n := rec.Number(field)
		if min != nil && n < *min {
			return false
		}
		if max != nil && n > *max {
			return false
		}
		return true
	}
}

// DateWindow matches records whose date field lies in [from, to], both
// YYYY-MM-DD and inclusive. A blank bound is open. Records with a missing
// or unparseable date fail an active window.
func DateWindow(field, from, to string) Predicate {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" && to == "" {
		return All()
	}
	return func(rec record.Record) bool {
		v, _ := rec.Get(field)
		d, ok := record.ISODate(v)
		if !ok {
			return false
		}
		if from != "" && d < from {
			return false
		}
		if to != "" && d > to {
			return false
		}
		return true
	}
}
