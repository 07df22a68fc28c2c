package aggregate

import (
	"math"

	"github.com/hyperengineering/opsboard/internal/record"
)

// CompletionSummary reports completion for a group of fields and records.
//
// Total counts every classified pair and is what "X/Y tasks" labels show.
// Applicable is Total minus NA and is the denominator of Percentage.
type CompletionSummary struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	NA         int `json:"na"`
	Applicable int `json:"applicable"`
	Percentage int `json:"percentage"`
}

// Add folds one classification into the summary and refreshes Percentage.
func (s *CompletionSummary) Add(status Status) {
	s.Total++
	switch status {
	case StatusComplete:
		s.Completed++
	case StatusNA:
		s.NA++
	}
	s.Applicable = s.Total - s.NA
	s.Percentage = Percent(s.Completed, s.Applicable)
}

// Percent returns round(100*completed/applicable) clamped to [0,100].
// A zero or negative denominator yields 0.
func Percent(completed, applicable int) int {
	if applicable <= 0 || completed <= 0 {
		return 0
	}
	p := int(math.Round(100 * float64(completed) / float64(applicable)))
	if p > 100 {
		return 100
	}
	return p
}

// Summarize classifies every record against every field and aggregates the
// results. Empty input yields a zeroed summary.
func Summarize(records []record.Record, fields []NamedField) CompletionSummary {
	var s CompletionSummary
	for _, rec := range records {
		for _, f := range fields {
			v, _ := rec.Get(f.Name)
			s.Add(ClassifyField(v, f.FieldConfig))
		}
	}
	return s
}

