// Package invoices is the vendor invoice compliance schema.
package invoices

import (
	"github.com/hyperengineering/opsboard/internal/aggregate"
	"github.com/hyperengineering/opsboard/internal/schema"
)

// Kind is the invoices schema's kind.
const Kind = "invoices"

// New creates the invoices schema. Lien waivers are not applicable to
// service-only vendors, marked "N/A" in the sheet.
func New() *schema.Static {
	return &schema.Static{
		KindName: Kind,
		FieldSet: []aggregate.NamedField{
			schema.Checkbox("w9 on file"),
			schema.Checkbox("coi received"),
			schema.Select("lien waiver", []string{"Received", "Yes"}, []string{"N/A", "Not Required"}),
			schema.Select("approved", []string{"Approved", "Paid"}, nil),
		},
		Groups: map[string]aggregate.KeyFunc{
			"vendor": aggregate.FieldKey("vendor"),
			"status": aggregate.UpperKey("status"),
		},
		Totals: "amount",
	}
}
