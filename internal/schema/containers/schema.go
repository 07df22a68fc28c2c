// Package containers is the shipping container tracker schema.
package containers

import (
	"github.com/hyperengineering/opsboard/internal/aggregate"
	"github.com/hyperengineering/opsboard/internal/schema"
)

// Kind is the containers schema's kind.
const Kind = "containers"

// New creates the containers schema. Milestones are recorded as dates; a
// parseable date means the milestone happened.
func New() *schema.Static {
	date := func(name string) aggregate.NamedField {
		return aggregate.Field(name, aggregate.FieldConfig{Type: aggregate.FieldDate, NAValues: []string{"N/A"}})
	}
	return &schema.Static{
		KindName: Kind,
		FieldSet: []aggregate.NamedField{
			date("departed"),
			date("arrived"),
			schema.Checkbox("customs cleared"),
			date("delivered"),
		},
		Groups: map[string]aggregate.KeyFunc{
			"status":  aggregate.FieldKey("status"),
			"carrier": aggregate.UpperKey("carrier"),
		},
	}
}
