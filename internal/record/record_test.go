package record

import (
	"encoding/json"
	"testing"
)

func TestGet_CaseInsensitive(t *testing.T) {
	r := New(map[string]any{"Room Number": 204.0, "STATUS": "Done"})

	tests := []struct {
		name string
		key  string
		want any
	}{
		{"exact", "Room Number", 204.0},
		{"lower", "room number", 204.0},
		{"upper with spaces", "  ROOM NUMBER ", 204.0},
		{"status", "status", "Done"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Get(tt.key)
			if !ok {
				t.Fatalf("Get(%q) ok = false, want true", tt.key)
			}
			if got != tt.want {
				t.Errorf("Get(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestGet_Missing(t *testing.T) {
	r := New(map[string]any{"a": "x"})
	if v, ok := r.Get("b"); ok || v != nil {
		t.Errorf("Get(missing) = (%v, %v), want (nil, false)", v, ok)
	}

	var zero Record
	if _, ok := zero.Get("a"); ok {
		t.Error("zero Record Get() ok = true, want false")
	}
}

func TestNew_NormalizesValues(t *testing.T) {
	r := New(map[string]any{
		"int":    3,
		"int64":  int64(4),
		"nested": map[string]any{"k": "v"},
	})
	if v, _ := r.Get("int"); v != 3.0 {
		t.Errorf("int normalized to %v (%T), want 3.0", v, v)
	}
	if v, _ := r.Get("int64"); v != 4.0 {
		t.Errorf("int64 normalized to %v (%T), want 4.0", v, v)
	}
	if got := r.String("nested"); got != `{"k":"v"}` {
		t.Errorf("nested = %q, want JSON text", got)
	}
}

func TestNew_CollisionKeepsSmallestKey(t *testing.T) {
	r := New(map[string]any{"status": "b", "Status": "a"})
	if got := r.String("STATUS"); got != "a" {
		t.Errorf("String(STATUS) = %q, want %q", got, "a")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestFromPairs_KeepsColumnOrder(t *testing.T) {
	r := FromPairs([]string{"Room", "Paint", "Demo", "paint"}, []any{"101", "TRUE", "FALSE", "ignored"})
	names := r.Names()
	want := []string{"Room", "Paint", "Demo"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
	if got := r.String("paint"); got != "TRUE" {
		t.Errorf("String(paint) = %q, want first value", got)
	}
}

func TestJSONRoundTripKeepsOriginalNames(t *testing.T) {
	var r Record
	if err := json.Unmarshal([]byte(`{"Vendor":"Acme","Amount":12.5}`), &r); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	out, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != `{"Vendor":"Acme","Amount":12.5}` {
		t.Errorf("Marshal() = %s", out)
	}
}

func TestJSONRoundTripKeepsColumnOrder(t *testing.T) {
	orig := FromPairs([]string{"Room", "Paint", "Demo", "Cost"}, []any{"101", true, nil, 12.5})
	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"Room":"101","Paint":true,"Demo":null,"Cost":12.5}` {
		t.Errorf("Marshal() = %s", data)
	}

	var back Record
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	names := back.Names()
	want := []string{"Room", "Paint", "Demo", "Cost"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestUnmarshalJSON_RejectsNonObject(t *testing.T) {
	var r Record
	for _, in := range []string{`[1,2]`, `"x"`, `{"a":`} {
		if err := json.Unmarshal([]byte(in), &r); err == nil {
			t.Errorf("Unmarshal(%s) error = nil, want error", in)
		}
	}
	if err := json.Unmarshal([]byte(`null`), &r); err != nil || r.Len() != 0 {
		t.Errorf("Unmarshal(null) = %v, %d fields; want empty record", err, r.Len())
	}
}
