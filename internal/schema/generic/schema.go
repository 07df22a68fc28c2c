package generic

import (
	"strings"

	"github.com/hyperengineering/opsboard/internal/aggregate"
	"github.com/hyperengineering/opsboard/internal/schema"
)

// Kind is the generic schema's kind.
const Kind = "generic"

// Schema is the fallback schema.
// It tracks no fields of its own and groups by any field name verbatim.
type Schema struct{}

// New creates a new generic schema.
func New() *Schema {
	return &Schema{}
}

// Kind returns "generic".
func (s *Schema) Kind() string { return Kind }

// Fields returns nil; generic datasets carry their own fields.
func (s *Schema) Fields() []aggregate.NamedField { return nil }

// GroupKey groups by the named field's raw value.
func (s *Schema) GroupKey(name string) (aggregate.KeyFunc, bool) {
	if strings.TrimSpace(name) == "" {
		return nil, false
	}
	return aggregate.FieldKey(name), true
}

// GroupNames returns nil; any field name is accepted.
func (s *Schema) GroupNames() []string { return nil }

// TotalsField returns "".
func (s *Schema) TotalsField() string { return "" }

var _ schema.Schema = (*Schema)(nil)
