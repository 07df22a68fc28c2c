package aggregate

import (
	"testing"

	"github.com/hyperengineering/opsboard/internal/record"
)

func recs(rows ...map[string]any) []record.Record {
	out := make([]record.Record, len(rows))
	for i, r := range rows {
		out[i] = record.New(r)
	}
	return out
}

func TestSummarize_NAExcludedFromDenominator(t *testing.T) {
	records := recs(
		map[string]any{"x": "TRUE"},
		map[string]any{"x": "N/A"},
		map[string]any{"x": ""},
	)
	fields := []NamedField{Field("x", FieldConfig{Type: FieldCheckbox, NAValues: []string{"N/A"}})}

	got := Summarize(records, fields)
	want := CompletionSummary{Completed: 1, Total: 3, NA: 1, Applicable: 2, Percentage: 50}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
}

func TestSummarize_Empty(t *testing.T) {
	fields := []NamedField{Field("x", FieldConfig{Type: FieldCheckbox})}
	got := Summarize(nil, fields)
	if got != (CompletionSummary{}) {
		t.Errorf("Summarize(nil) = %+v, want zero", got)
	}
}

func TestSummarize_AllNA(t *testing.T) {
	records := recs(map[string]any{"x": "n/a"}, map[string]any{"x": "N/A"})
	fields := []NamedField{Field("x", FieldConfig{Type: FieldCheckbox, NAValues: []string{"N/A"}})}

	got := Summarize(records, fields)
	if got.Percentage != 0 {
		t.Errorf("Percentage = %d, want 0", got.Percentage)
	}
	if got.Total != 2 || got.Applicable != 0 {
		t.Errorf("Total/Applicable = %d/%d, want 2/0", got.Total, got.Applicable)
	}
}

func TestSummarize_PercentageInRange(t *testing.T) {
	values := []any{true, false, "TRUE", "1", 1.0, 0.0, "N/A", nil, "garbage", "false"}
	fields := []NamedField{Field("x", FieldConfig{Type: FieldCheckbox, NAValues: []string{"N/A"}})}

	for n := 0; n <= len(values); n++ {
		var records []record.Record
		for _, v := range values[:n] {
			records = append(records, record.New(map[string]any{"x": v}))
		}
		got := Summarize(records, fields)
		if got.Percentage < 0 || got.Percentage > 100 {
			t.Fatalf("n=%d: Percentage = %d, out of [0,100]", n, got.Percentage)
		}
		if got.Total != n {
			t.Errorf("n=%d: Total = %d", n, got.Total)
		}
	}
}

func TestSummarize_Idempotent(t *testing.T) {
	records := recs(
		map[string]any{"Paint": "TRUE", "Demo": "Done"},
		map[string]any{"paint": false, "DEMO": "in progress"},
	)
	fields := []NamedField{
		Field("paint", FieldConfig{Type: FieldCheckbox}),
		Field("demo", FieldConfig{Type: FieldSelect, CompleteValues: []string{"done"}}),
	}

	first := Summarize(records, fields)
	second := Summarize(records, fields)
	if first != second {
		t.Errorf("Summarize() not idempotent: %+v vs %+v", first, second)
	}
	if first.Completed != 2 || first.Total != 4 || first.Percentage != 50 {
		t.Errorf("Summarize() = %+v", first)
	}
}

func TestSummarize_OrderInvariant(t *testing.T) {
	a := recs(map[string]any{"x": true}, map[string]any{"x": false}, map[string]any{"x": "N/A"})
	b := []record.Record{a[2], a[0], a[1]}
	fields := []NamedField{Field("x", FieldConfig{Type: FieldCheckbox, NAValues: []string{"N/A"}})}

	if Summarize(a, fields) != Summarize(b, fields) {
		t.Error("Summarize() depends on record order")
	}
}

func TestPercent_Rounding(t *testing.T) {
	tests := []struct {
		completed, applicable, want int
	}{
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{0, 5, 0},
		{5, 0, 0},
		{7, 7, 100},
	}
	for _, tt := range tests {
		if got := Percent(tt.completed, tt.applicable); got != tt.want {
			t.Errorf("Percent(%d, %d) = %d, want %d", tt.completed, tt.applicable, got, tt.want)
		}
	}
}
