package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Collector accumulates validation errors without failing on first.
type Collector struct {
	errors []ValidationError
}

// Add appends a validation error to the collector if non-nil.
func (c *Collector) Add(err *ValidationError) {
	if err != nil {
		c.errors = append(c.errors, *err)
	}
}

// HasErrors returns true if the collector has accumulated any errors.
func (c *Collector) HasErrors() bool {
	return len(c.errors) > 0
}

// Errors returns all accumulated validation errors.
func (c *Collector) Errors() []ValidationError {
	return c.errors
}

// ValidateUTF8 returns an error if the value is not valid UTF-8.
func ValidateUTF8(field, value string) *ValidationError {
	if !utf8.ValidString(value) {
		return &ValidationError{
			Field:   field,
			Message: "must be valid UTF-8",
		}
	}
	return nil
}

// ValidateNoNullBytes returns an error if the value contains null bytes.
func ValidateNoNullBytes(field, value string) *ValidationError {
	if strings.Contains(value, "\x00") {
		return &ValidationError{
			Field:   field,
			Message: "must not contain null bytes",
		}
	}
	return nil
}

// ValidateMaxLength returns an error if the value exceeds max runes.
func ValidateMaxLength(field, value string, max int) *ValidationError {
	if utf8.RuneCountInString(value) > max {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("exceeds maximum length of %d characters", max),
		}
	}
	return nil
}

// ValidateRequired returns an error if the value is empty or whitespace-only.
func ValidateRequired(field, value string) *ValidationError {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   field,
			Message: "is required",
		}
	}
	return nil
}

// ValidateEnum returns an error if the value is not in the allowed list.
func ValidateEnum(field, value string, allowed []string) *ValidationError {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	}
}

// ValidateRange returns an error if the value is outside [min, max].
func ValidateRange(field string, value, min, max float64) *ValidationError {
	if value < min || value > max {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be between %.1f and %.1f", min, max),
		}
	}
	return nil
}

const (
	// MaxDatasetIDLength is the maximum length of a dataset ID.
	MaxDatasetIDLength = 128
	// MaxDatasetIDSegments is the maximum number of path segments.
	MaxDatasetIDSegments = 4
)

var datasetIDSegmentPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// ValidateDatasetID returns an error unless id is one to four "/"-separated
// lowercase alphanumeric segments (hyphens allowed inside a segment).
func ValidateDatasetID(field, id string) *ValidationError {
	if id == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	if len(id) > MaxDatasetIDLength {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("exceeds maximum length of %d characters", MaxDatasetIDLength),
		}
	}

	segments := strings.Split(id, "/")
	if len(segments) > MaxDatasetIDSegments {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("exceeds %d path segments", MaxDatasetIDSegments),
		}
	}
	for _, seg := range segments {
		if !datasetIDSegmentPattern.MatchString(seg) {
			return &ValidationError{
				Field:   field,
				Message: fmt.Sprintf("invalid segment %q (must be lowercase alphanumeric with hyphens)", seg),
			}
		}
	}
	return nil
}

// ValidateISODate returns an error unless value is a real YYYY-MM-DD date.
func ValidateISODate(field, value string) *ValidationError {
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return &ValidationError{
			Field:   field,
			Message: "must be a date in YYYY-MM-DD format",
		}
	}
	return nil
}

// ValidateDateOrder returns an error if end is before start. Both must
// already be valid ISO dates.
func ValidateDateOrder(field, start, end string) *ValidationError {
	if end < start {
		return &ValidationError{
			Field:   field,
			Message: "must not be before the start date",
		}
	}
	return nil
}
