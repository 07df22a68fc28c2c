package record

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ToString renders a record value the way a spreadsheet cell displays it.
// nil becomes "", booleans become "true"/"false" and numbers use the
// shortest exact decimal form.
func ToString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return ToString(normalizeValue(v))
	}
}

// Number coerces a value to float64. Blank, malformed, NaN and infinite
// values all become 0. Strings may carry a currency sign, thousands
// separators or a trailing percent sign.
func Number(v any) float64 {
	var f float64
	switch val := v.(type) {
	case nil:
		return 0
	case float64:
		f = val
	case bool:
		if val {
			return 1
		}
		return 0
	case string:
		parsed, ok := ParseNumber(val)
		if !ok {
			return 0
		}
		f = parsed
	default:
		return Number(normalizeValue(v))
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ParseNumber parses a spreadsheet number cell. It reports false for blank
// or non-numeric input.
func ParseNumber(s string) (float64, bool) {
	s = CleanNumeric(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// CleanNumeric strips whitespace, a leading currency sign, thousands
// separators and a trailing percent sign from s.
func CleanNumeric(s string) string {
	s = strings.TrimSpace(s)
	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = strings.TrimSpace(s[1:])
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if negative && s != "" {
		s = "-" + s
	}
	return s
}

// LeadingInt parses the integer prefix of s the way a lenient spreadsheet
// formula would: "204A" yields 204, "  12 " yields 12, "A12" fails.
func LeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// dateLayouts are the cell formats accepted as dates, most specific first.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"1/2/2006",
	"01/02/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ISODate normalizes a date cell to YYYY-MM-DD. It reports false for blank
// or unrecognized values.
func ISODate(v any) (string, bool) {
	s := strings.TrimSpace(ToString(v))
	if s == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}
