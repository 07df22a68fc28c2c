package aggregate

import (
	"sort"

	"github.com/hyperengineering/opsboard/internal/record"
)

// TaskRank is the completion of one field across all records.
type TaskRank struct {
	Field   string            `json:"field"`
	Summary CompletionSummary `json:"summary"`
}

// RankTasksByCompletion summarizes each field across all records and orders
// the fields by percentage, highest first. Fields with equal percentages
// keep their declaration order.
func RankTasksByCompletion(records []record.Record, fields []NamedField) []TaskRank {
	ranks := make([]TaskRank, 0, len(fields))
	for _, f := range fields {
		ranks = append(ranks, TaskRank{
			Field:   f.Name,
			Summary: Summarize(records, []NamedField{f}),
		})
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Summary.Percentage > ranks[j].Summary.Percentage
	})
	return ranks
}
