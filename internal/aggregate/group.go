package aggregate

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/hyperengineering/opsboard/internal/record"
)

// UnknownGroup collects records whose grouping key cannot be derived.
const UnknownGroup = "UNKNOWN"

// Key identifies a group. Numeric keys order by Number; text keys keep the
// order in which they were first encountered.
type Key struct {
	Label   string `json:"label"`
	Number  int    `json:"number,omitempty"`
	Numeric bool   `json:"numeric"`
}

// TextKey returns a text group key.
func TextKey(label string) Key {
	return Key{Label: label}
}

// NumberKey returns a numeric group key.
func NumberKey(n int) Key {
	return Key{Label: strconv.Itoa(n), Number: n, Numeric: true}
}

// KeyFunc derives a group key from a record.
type KeyFunc func(record.Record) Key

// Group is one bucket of records sharing a key.
type Group struct {
	Key     Key             `json:"key"`
	Records []record.Record `json:"records"`
}

// GroupBy buckets records by key. Numeric groups come first in ascending
// order, followed by text groups in encounter order. Input records are not
// modified.
func GroupBy(records []record.Record, keyFn KeyFunc) []Group {
	type id struct {
		label   string
		numeric bool
	}
	index := make(map[id]int)
	var groups []Group
	for _, rec := range records {
		k := keyFn(rec)
		gid := id{label: k.Label, numeric: k.Numeric}
		i, ok := index[gid]
		if !ok {
			i = len(groups)
			index[gid] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Records = append(groups[i].Records, rec)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].Key, groups[j].Key
		if a.Numeric != b.Numeric {
			return a.Numeric
		}
		if a.Numeric {
			return a.Number < b.Number
		}
		return false
	})
	return groups
}

// SortGroupsByLabel orders groups alphabetically by label, case-insensitive,
// with UNKNOWN last. It returns a new slice.
func SortGroupsByLabel(groups []Group) []Group {
	out := make([]Group, len(groups))
	copy(out, groups)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Key.Label, out[j].Key.Label
		if (a == UnknownGroup) != (b == UnknownGroup) {
			return b == UnknownGroup
		}
		return strings.ToLower(a) < strings.ToLower(b)
	})
	return out
}

// FloorKey groups rooms by floor: floor(roomNumber / 100). String room
// numbers such as "204A" are parsed from their leading digits.
func FloorKey(field string) KeyFunc {
	return func(rec record.Record) Key {
		v, ok := rec.Get(field)
		if !ok {
			return TextKey(UnknownGroup)
		}
		switch val := v.(type) {
		case float64:
			return NumberKey(int(math.Floor(val / 100)))
		case string:
			if n, ok := record.LeadingInt(val); ok {
				return NumberKey(int(math.Floor(float64(n) / 100)))
			}
		}
		return TextKey(UnknownGroup)
	}
}

// UpperKey groups by the upper-cased, trimmed value of field. Used for
// boroughs, where spreadsheet casing is inconsistent.
func UpperKey(field string) KeyFunc {
	return func(rec record.Record) Key {
		s := strings.ToUpper(strings.TrimSpace(rec.String(field)))
		if s == "" {
			return TextKey(UnknownGroup)
		}
		return TextKey(s)
	}
}

// FieldKey groups by the trimmed raw value of field.
func FieldKey(field string) KeyFunc {
	return func(rec record.Record) Key {
		s := strings.TrimSpace(rec.String(field))
		if s == "" {
			return TextKey(UnknownGroup)
		}
		return TextKey(s)
	}
}

// GroupSummary is a group with its completion summary.
type GroupSummary struct {
	Key     Key               `json:"key"`
	Count   int               `json:"count"`
	Summary CompletionSummary `json:"summary"`
}

// SummarizeGroups computes a completion summary per group, keeping group
// order.
func SummarizeGroups(groups []Group, fields []NamedField) []GroupSummary {
	out := make([]GroupSummary, 0, len(groups))
	for _, g := range groups {
		out = append(out, GroupSummary{
			Key:     g.Key,
			Count:   len(g.Records),
			Summary: Summarize(g.Records, fields),
		})
	}
	return out
}
