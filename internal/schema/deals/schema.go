// Package deals is the acquisitions pipeline schema.
package deals

import (
	"github.com/hyperengineering/opsboard/internal/aggregate"
	"github.com/hyperengineering/opsboard/internal/schema"
)

// Kind is the deals schema's kind.
const Kind = "deals"

// New creates the deals schema. Boroughs are typed inconsistently in the
// source sheets, so that grouping upper-cases.
func New() *schema.Static {
	return &schema.Static{
		KindName: Kind,
		FieldSet: []aggregate.NamedField{
			schema.Checkbox("site visit"),
			schema.Checkbox("financials reviewed"),
			schema.Checkbox("offer sent"),
			schema.Select("under contract", []string{"Yes", "Signed"}, []string{"Withdrawn"}),
		},
		Groups: map[string]aggregate.KeyFunc{
			"borough": aggregate.UpperKey("borough"),
			"status":  aggregate.FieldKey("status"),
		},
		Totals: "price",
	}
}
