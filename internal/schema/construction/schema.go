// Package construction is the renovation tracker schema: one record per
// unit, one checkbox per trade.
package construction

import (
	"github.com/hyperengineering/opsboard/internal/aggregate"
	"github.com/hyperengineering/opsboard/internal/schema"
)

// Kind is the construction schema's kind.
const Kind = "construction"

// Trades are the tracked fields, in display order.
var Trades = []string{
	"demo", "framing", "electrical", "plumbing",
	"drywall", "paint", "flooring", "fixtures",
}

// New creates the construction schema. Units are grouped by floor, derived
// from the unit number, or by status.
func New() *schema.Static {
	fields := make([]aggregate.NamedField, 0, len(Trades))
	for _, t := range Trades {
		fields = append(fields, schema.Checkbox(t))
	}
	return &schema.Static{
		KindName: Kind,
		FieldSet: fields,
		Groups: map[string]aggregate.KeyFunc{
			"floor":  aggregate.FloorKey("unit"),
			"status": aggregate.FieldKey("status"),
		},
	}
}
