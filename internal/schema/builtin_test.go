package schema_test

import (
	"testing"

	"github.com/hyperengineering/opsboard/internal/aggregate"
	"github.com/hyperengineering/opsboard/internal/record"
	"github.com/hyperengineering/opsboard/internal/schema"
	"github.com/hyperengineering/opsboard/internal/schema/construction"
	"github.com/hyperengineering/opsboard/internal/schema/containers"
	"github.com/hyperengineering/opsboard/internal/schema/deals"
	"github.com/hyperengineering/opsboard/internal/schema/generic"
	"github.com/hyperengineering/opsboard/internal/schema/invoices"
)

func TestBuiltinKinds(t *testing.T) {
	builtins := []schema.Schema{construction.New(), invoices.New(), deals.New(), containers.New()}
	for _, s := range builtins {
		if len(s.Fields()) == 0 {
			t.Errorf("%s: no fields", s.Kind())
		}
		for _, g := range s.GroupNames() {
			if _, ok := s.GroupKey(g); !ok {
				t.Errorf("%s: GroupNames lists %q but GroupKey misses it", s.Kind(), g)
			}
		}
	}
}

func TestConstruction_FloorGrouping(t *testing.T) {
	s := construction.New()
	key, ok := s.GroupKey("floor")
	if !ok {
		t.Fatal("construction should group by floor")
	}
	recs := []record.Record{
		record.New(map[string]any{"unit": 204.0}),
		record.New(map[string]any{"unit": "101"}),
		record.New(map[string]any{"unit": "lobby"}),
		record.New(map[string]any{"unit": 210.0}),
	}
	groups := aggregate.GroupBy(recs, key)
	if len(groups) != 3 {
		t.Fatalf("groups = %+v", groups)
	}
	if groups[0].Key.Number != 1 || groups[1].Key.Number != 2 || len(groups[1].Records) != 2 {
		t.Errorf("floor order = %+v", groups)
	}
	if groups[2].Key.Label != aggregate.UnknownGroup {
		t.Errorf("last group = %+v, want UNKNOWN", groups[2].Key)
	}
}

func TestInvoices_LienWaiverNA(t *testing.T) {
	s := invoices.New()
	rec := record.New(map[string]any{
		"w9 on file":   true,
		"coi received": false,
		"lien waiver":  "N/A",
		"approved":     "Paid",
	})
	sum := aggregate.Summarize([]record.Record{rec}, s.Fields())
	if sum.Completed != 2 || sum.NA != 1 || sum.Applicable != 3 || sum.Percentage != 67 {
		t.Errorf("summary = %+v", sum)
	}
	if s.TotalsField() != "amount" {
		t.Errorf("TotalsField() = %q", s.TotalsField())
	}
}

func TestGeneric_GroupsByAnyField(t *testing.T) {
	s := generic.New()
	if s.Kind() != generic.Kind || s.Fields() != nil {
		t.Errorf("generic = %q %v", s.Kind(), s.Fields())
	}
	if _, ok := s.GroupKey(" "); ok {
		t.Error("blank grouping should be rejected")
	}
	key, ok := s.GroupKey("owner")
	if !ok {
		t.Fatal("generic should group by any field")
	}
	if k := key(record.New(map[string]any{"Owner": " Dana "})); k.Label != "Dana" {
		t.Errorf("key = %+v", k)
	}
}
