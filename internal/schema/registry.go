package schema

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hyperengineering/opsboard/internal/aggregate"
)

// registry holds all registered schemas.
var (
	registryMu sync.RWMutex
	schemas    = make(map[string]Schema)
	generic    Schema // fallback schema
)

// Register adds a schema to the registry.
// Schemas should be registered early in main().
// Panics if a schema with the same kind is already registered.
func Register(s Schema) {
	registryMu.Lock()
	defer registryMu.Unlock()

	k := s.Kind()
	if _, exists := schemas[k]; exists {
		panic("schema already registered: " + k)
	}
	schemas[k] = s
}

// Get returns the schema for the given kind.
// If no kind-specific schema is registered, returns the generic schema.
// The boolean indicates whether a kind-specific schema was found.
func Get(kind string) (Schema, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	if s, ok := schemas[kind]; ok {
		return s, true
	}
	return generic, false
}

// Lookup is Get with an error instead of a nil schema.
func Lookup(kind string) (Schema, error) {
	s, _ := Get(kind)
	if s == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return s, nil
}

// SetGeneric sets the fallback schema used when no kind-specific schema exists.
func SetGeneric(s Schema) {
	registryMu.Lock()
	defer registryMu.Unlock()
	generic = s
}

// RegisteredKinds returns all registered kinds, sorted.
func RegisteredKinds() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	kinds := make([]string, 0, len(schemas))
	for k := range schemas {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Reset clears the registry. Only for testing.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	schemas = make(map[string]Schema)
	generic = nil
}

// Resolve returns the effective field list for a dataset: the override when
// the dataset carries its own fields, otherwise the kind's schema fields.
func Resolve(kind string, override []aggregate.NamedField) ([]aggregate.NamedField, error) {
	if len(override) > 0 {
		out := make([]aggregate.NamedField, len(override))
		copy(out, override)
		return out, nil
	}
	s, err := Lookup(kind)
	if err != nil {
		return nil, err
	}
	return s.Fields(), nil
}
