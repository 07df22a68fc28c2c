package schema

import (
	"errors"
	"sync"
	"testing"

	"github.com/hyperengineering/opsboard/internal/aggregate"
)

func stub(kind string, fields ...string) *Static {
	fs := make([]aggregate.NamedField, 0, len(fields))
	for _, f := range fields {
		fs = append(fs, Checkbox(f))
	}
	return &Static{KindName: kind, FieldSet: fs}
}

func TestRegister_Duplicate(t *testing.T) {
	Reset()
	Register(stub("deals"))

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Register duplicate did not panic")
		}
		if msg, _ := r.(string); msg != "schema already registered: deals" {
			t.Errorf("panic message = %q", msg)
		}
	}()

	Register(stub("deals"))
}

func TestGet_RegisteredAndFallback(t *testing.T) {
	Reset()
	Register(stub("deals"))

	s, ok := Get("deals")
	if !ok || s.Kind() != "deals" {
		t.Fatalf("Get(deals) = %v, %v", s, ok)
	}

	s, ok = Get("invoices")
	if ok || s != nil {
		t.Errorf("Get(invoices) without generic = %v, %v; want nil, false", s, ok)
	}

	SetGeneric(stub("generic"))
	s, ok = Get("invoices")
	if ok {
		t.Error("Get() ok = true for unregistered kind")
	}
	if s == nil || s.Kind() != "generic" {
		t.Errorf("Get() = %v, want generic fallback", s)
	}
}

func TestLookup_UnknownKind(t *testing.T) {
	Reset()
	_, err := Lookup("nope")
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Lookup() error = %v, want ErrUnknownKind", err)
	}
}

func TestRegisteredKinds_Sorted(t *testing.T) {
	Reset()
	Register(stub("invoices"))
	Register(stub("construction"))
	Register(stub("deals"))

	got := RegisteredKinds()
	want := []string{"construction", "deals", "invoices"}
	if len(got) != len(want) {
		t.Fatalf("RegisteredKinds() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("kinds[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestResolve(t *testing.T) {
	Reset()
	Register(stub("deals", "site visit", "offer sent"))

	fields, err := Resolve("deals", nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(fields) != 2 || fields[0].Name != "site visit" {
		t.Errorf("Resolve(deals) = %+v", fields)
	}

	override := []aggregate.NamedField{Checkbox("custom")}
	fields, err = Resolve("unknown", override)
	if err != nil {
		t.Fatalf("Resolve() with override error = %v", err)
	}
	if len(fields) != 1 || fields[0].Name != "custom" {
		t.Errorf("Resolve(override) = %+v", fields)
	}

	if _, err := Resolve("unknown", nil); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Resolve(unknown) error = %v, want ErrUnknownKind", err)
	}
}

func TestStatic_FieldsIsCopy(t *testing.T) {
	s := stub("deals", "a", "b")
	f := s.Fields()
	f[0].Name = "mutated"
	if s.Fields()[0].Name != "a" {
		t.Error("Fields() exposed the backing slice")
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	Reset()
	SetGeneric(stub("generic"))
	kinds := []string{"a", "b", "c", "d"}
	for _, k := range kinds {
		Register(stub(k))
	}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			k := kinds[idx%len(kinds)]
			s, ok := Get(k)
			if !ok || s.Kind() != k {
				t.Errorf("Get(%q) = %v, %v", k, s, ok)
			}
			if s, _ := Get("missing"); s == nil {
				t.Error("Get(missing) returned nil, want generic")
			}
		}(i)
	}
	wg.Wait()
}
