package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hyperengineering/opsboard/internal/aggregate"
)

// fileSchema is the on-disk YAML layout:
//
//	kind: punchlist
//	totals: amount
//	fields:
//	  - name: signed off
//	    type: checkbox
//	groups:
//	  floor: {by: unit, mode: floor}
//	  trade: {by: trade}
type fileSchema struct {
	Kind   string                     `yaml:"kind"`
	Totals string                     `yaml:"totals"`
	Fields []aggregate.NamedField     `yaml:"fields"`
	Groups map[string]fileGroupConfig `yaml:"groups"`
}

type fileGroupConfig struct {
	By   string `yaml:"by"`
	Mode string `yaml:"mode"`
}

// Group key modes accepted in schema files.
const (
	GroupModeField = "field"
	GroupModeUpper = "upper"
	GroupModeFloor = "floor"
)

// LoadFile parses a YAML schema file into a Static schema.
func LoadFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML schema bytes into a Static schema.
func Parse(data []byte) (*Static, error) {
	var fs fileSchema
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	fs.Kind = strings.TrimSpace(fs.Kind)
	if fs.Kind == "" {
		return nil, fmt.Errorf("%w: kind is required", ErrInvalidSchema)
	}

	seen := make(map[string]bool, len(fs.Fields))
	for i, f := range fs.Fields {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: fields[%d]: name is required", ErrInvalidSchema, i)
		}
		if seen[strings.ToLower(name)] {
			return nil, fmt.Errorf("%w: fields[%d]: duplicate field %q", ErrInvalidSchema, i, name)
		}
		seen[strings.ToLower(name)] = true
		if f.Type == "" {
			fs.Fields[i].Type = aggregate.FieldCheckbox
		} else if !validFieldType(f.Type) {
			return nil, fmt.Errorf("%w: fields[%d]: unknown type %q", ErrInvalidSchema, i, f.Type)
		}
		fs.Fields[i].Name = name
	}

	groups := make(map[string]aggregate.KeyFunc, len(fs.Groups))
	for name, g := range fs.Groups {
		by := g.By
		if by == "" {
			by = name
		}
		switch g.Mode {
		case "", GroupModeField:
			groups[name] = aggregate.FieldKey(by)
		case GroupModeUpper:
			groups[name] = aggregate.UpperKey(by)
		case GroupModeFloor:
			groups[name] = aggregate.FloorKey(by)
		default:
			return nil, fmt.Errorf("%w: groups.%s: unknown mode %q", ErrInvalidSchema, name, g.Mode)
		}
	}

	return &Static{
		KindName: fs.Kind,
		FieldSet: fs.Fields,
		Groups:   groups,
		Totals:   fs.Totals,
	}, nil
}

// LoadDir loads every *.yaml and *.yml file in dir, in name order.
// A missing directory yields no schemas.
func LoadDir(dir string) ([]*Static, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read schema dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if !e.IsDir() && (ext == ".yaml" || ext == ".yml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out := make([]*Static, 0, len(names))
	for _, n := range names {
		s, err := LoadFile(filepath.Join(dir, n))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", n, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func validFieldType(t aggregate.FieldType) bool {
	for _, ft := range aggregate.FieldTypes {
		if string(t) == ft {
			return true
		}
	}
	return false
}
