// Package aggregate derives display-ready statistics from spreadsheet-shaped
// records: completion summaries, groupings, rankings, filters, sorting and
// numeric totals. Every function is pure and never fails; malformed input
// degrades to a default instead of producing an error.
package aggregate

import (
	"strings"

	"github.com/hyperengineering/opsboard/internal/record"
)

// FieldType tags how a field's raw value is interpreted.
type FieldType string

const (
	FieldCheckbox FieldType = "checkbox"
	FieldText     FieldType = "text"
	FieldSelect   FieldType = "select"
	FieldNumber   FieldType = "number"
	FieldDate     FieldType = "date"
)

// FieldTypes lists every supported field type.
var FieldTypes = []string{
	string(FieldCheckbox),
	string(FieldText),
	string(FieldSelect),
	string(FieldNumber),
	string(FieldDate),
}

// FieldConfig describes how to classify one field's value.
type FieldConfig struct {
	Type           FieldType `json:"type" yaml:"type"`
	CompleteValues []string  `json:"complete_values,omitempty" yaml:"complete_values,omitempty"`
	NAValues       []string  `json:"na_values,omitempty" yaml:"na_values,omitempty"`
}

// NamedField pairs a field name with its configuration.
type NamedField struct {
	Name        string `json:"name" yaml:"name"`
	FieldConfig `yaml:",inline"`
}

// Field is a shorthand constructor for NamedField.
func Field(name string, cfg FieldConfig) NamedField {
	return NamedField{Name: name, FieldConfig: cfg}
}

// Status is the tri-state completion outcome of a single field.
type Status string

const (
	StatusComplete   Status = "complete"
	StatusIncomplete Status = "incomplete"
	StatusNA         Status = "na"
)

// ClassifyField classifies a raw value against its configuration.
//
// The value is normalized to its trimmed string form and compared
// case-insensitively. NA values are checked first, so a value listed as both
// NA and complete is NA. Checkbox fields additionally treat true, 1, "TRUE"
// and "1" as checked. Number and date fields with no explicit complete values
// count any positive number or any parseable date as complete.
func ClassifyField(value any, cfg FieldConfig) Status {
	s := strings.TrimSpace(record.ToString(value))

	if containsFold(cfg.NAValues, s) {
		return StatusNA
	}
	if containsFold(cfg.CompleteValues, s) {
		return StatusComplete
	}

	switch cfg.Type {
	case FieldCheckbox:
		if isChecked(value, s) {
			return StatusComplete
		}
	case FieldNumber:
		if len(cfg.CompleteValues) == 0 && record.Number(value) > 0 {
			return StatusComplete
		}
	case FieldDate:
		if len(cfg.CompleteValues) == 0 {
			if _, ok := record.ISODate(value); ok {
				return StatusComplete
			}
		}
	}
	return StatusIncomplete
}

func isChecked(value any, s string) bool {
	switch v := value.(type) {
	case bool:
		return v
	case float64:
		return v == 1
	}
	return strings.EqualFold(s, "true") || s == "1"
}

func containsFold(values []string, s string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), s) {
			return true
		}
	}
	return false
}
