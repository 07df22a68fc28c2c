// Package schema holds the static field tables for each dashboard kind.
//
// A Schema tells the aggregation layer which fields to classify, how each
// named grouping is keyed, and which numeric column carries money or counts
// worth totalling. Schemas are registered once at startup and looked up by
// the dataset's kind.
package schema

import (
	"sort"

	"github.com/hyperengineering/opsboard/internal/aggregate"
)

// Schema describes one dashboard kind.
type Schema interface {
	// Kind returns the dataset kind this schema serves.
	Kind() string

	// Fields returns the tracked completion fields in display order.
	Fields() []aggregate.NamedField

	// GroupKey returns the key function for a named grouping.
	GroupKey(name string) (aggregate.KeyFunc, bool)

	// GroupNames lists the groupings GroupKey understands.
	GroupNames() []string

	// TotalsField names the numeric column to total, or "" for none.
	TotalsField() string
}

// Static is a Schema backed by fixed tables. Kind packages embed it.
type Static struct {
	KindName string
	FieldSet []aggregate.NamedField
	Groups   map[string]aggregate.KeyFunc
	Totals   string
}

// Kind implements Schema.
func (s *Static) Kind() string { return s.KindName }

// Fields returns a copy of the field table.
func (s *Static) Fields() []aggregate.NamedField {
	out := make([]aggregate.NamedField, len(s.FieldSet))
	copy(out, s.FieldSet)
	return out
}

// GroupKey implements Schema.
func (s *Static) GroupKey(name string) (aggregate.KeyFunc, bool) {
	fn, ok := s.Groups[name]
	return fn, ok
}

// GroupNames returns the grouping names, sorted.
func (s *Static) GroupNames() []string {
	names := make([]string, 0, len(s.Groups))
	for n := range s.Groups {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// TotalsField implements Schema.
func (s *Static) TotalsField() string { return s.Totals }

// Checkbox is a shorthand for a checkbox field.
func Checkbox(name string) aggregate.NamedField {
	return aggregate.Field(name, aggregate.FieldConfig{Type: aggregate.FieldCheckbox})
}

// Select is a shorthand for a select field with explicit complete and N/A
// values.
func Select(name string, complete, na []string) aggregate.NamedField {
	return aggregate.Field(name, aggregate.FieldConfig{
		Type:           aggregate.FieldSelect,
		CompleteValues: complete,
		NAValues:       na,
	})
}

var _ Schema = (*Static)(nil)
