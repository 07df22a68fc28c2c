package aggregate

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/hyperengineering/opsboard/internal/record"
)

// Totals are exact decimal statistics for one numeric column.
type Totals struct {
	Field   string          `json:"field"`
	Count   int             `json:"count"`
	Sum     decimal.Decimal `json:"sum"`
	Average decimal.Decimal `json:"average"`
	Min     decimal.Decimal `json:"min"`
	Max     decimal.Decimal `json:"max"`
}

// ComputeTotals sums a numeric field exactly. Blank and malformed cells
// contribute 0 and still count toward Count.
func ComputeTotals(records []record.Record, field string) Totals {
	t := Totals{Field: field}
	for i, rec := range records {
		v, _ := rec.Get(field)
		d := Decimal(v)
		t.Sum = t.Sum.Add(d)
		if i == 0 || d.LessThan(t.Min) {
			t.Min = d
		}
		if i == 0 || d.GreaterThan(t.Max) {
			t.Max = d
		}
	}
	t.Count = len(records)
	if t.Count > 0 {
		t.Average = t.Sum.Div(decimal.NewFromInt(int64(t.Count))).Round(2)
	}
	return t
}

// Decimal converts a record value to a decimal, coercing malformed input to
// zero.
func Decimal(v any) decimal.Decimal {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(val)
	case string:
		d, err := decimal.NewFromString(record.CleanNumeric(val))
		if err != nil {
			return decimal.Zero
		}
		return d
	case bool:
		if val {
			return decimal.NewFromInt(1)
		}
	}
	return decimal.Zero
}
