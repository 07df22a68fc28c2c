// Package record models one flat, spreadsheet-sourced row (a room, deal,
// invoice or container). Field names are normalized once on construction so
// every lookup is a case-insensitive O(1) map access.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Record is an immutable row of loosely typed values. Values are one of
// bool, float64, string or nil.
type Record struct {
	values map[string]any
	names  []string // original field names in first-seen order
}

// New builds a Record from a raw field map. Field order is the sorted key
// order; when two keys differ only by case the lexically smaller one wins.
func New(raw map[string]any) Record {
	keys := make([]string, 0, len(raw))
	for name := range raw {
		keys = append(keys, name)
	}
	sort.Strings(keys)

	r := Record{
		values: make(map[string]any, len(raw)),
		names:  make([]string, 0, len(raw)),
	}
	for _, name := range keys {
		r.set(name, raw[name])
	}
	return r
}

// FromPairs builds a Record from ordered name/value pairs, keeping the
// original column order. Later duplicates of a name are ignored.
func FromPairs(names []string, values []any) Record {
	r := Record{
		values: make(map[string]any, len(names)),
		names:  make([]string, 0, len(names)),
	}
	for i, name := range names {
		var v any
		if i < len(values) {
			v = values[i]
		}
		r.set(name, v)
	}
	return r
}

func (r *Record) set(name string, v any) {
	key := NormalizeKey(name)
	if key == "" {
		return
	}
	if _, exists := r.values[key]; exists {
		return
	}
	r.values[key] = normalizeValue(v)
	r.names = append(r.names, strings.TrimSpace(name))
}

// NormalizeKey returns the lookup form of a field name.
func NormalizeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Get returns the value stored under name, ignoring case and surrounding
// whitespace. The boolean reports whether the field exists.
func (r Record) Get(name string) (any, bool) {
	if r.values == nil {
		return nil, false
	}
	v, ok := r.values[NormalizeKey(name)]
	return v, ok
}

// String returns the string form of the named field, or "" when absent.
func (r Record) String(name string) string {
	v, _ := r.Get(name)
	return ToString(v)
}

// Number returns the numeric value of the named field. Missing or malformed
// values coerce to 0.
func (r Record) Number(name string) float64 {
	v, _ := r.Get(name)
	return Number(v)
}

// Names returns the original field names in column order.
func (r Record) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.names)
}

// MarshalJSON encodes the record as an object with its original field
// names in column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.values[NormalizeKey(name)])
		if err != nil {
			return nil, fmt.Errorf("encode field %q: %w", name, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into a record, keeping the object's
// key order as the column order. Later keys that repeat a name are ignored.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	if tok == nil {
		*r = New(nil)
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("decode record: expected object, got %v", tok)
	}

	var names []string
	var values []any
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode record: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("decode record: unexpected key %v", tok)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("decode record field %q: %w", name, err)
		}
		names = append(names, name)
		values = append(values, v)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	*r = FromPairs(names, values)
	return nil
}

// normalizeValue folds the value space down to bool, float64, string and nil.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case bool, string, float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int8:
		return float64(val)
	case int16:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case uint:
		return float64(val)
	case uint8:
		return float64(val)
	case uint16:
		return float64(val)
	case uint32:
		return float64(val)
	case uint64:
		return float64(val)
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	default:
		// Nested objects and arrays are kept as their JSON text.
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}
