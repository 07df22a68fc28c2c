package validation

import (
	"fmt"
	"strings"

	"github.com/hyperengineering/opsboard/internal/aggregate"
	"github.com/hyperengineering/opsboard/internal/types"
)

// Field limits for dataset requests.
const (
	MaxNameLength        = 200
	MaxDescriptionLength = 2000
	MaxFieldNameLength   = 200
	MaxFields            = 100
)

// ValidateCreateDataset checks a create request against the known kinds.
func ValidateCreateDataset(req types.NewDataset, kinds []string) []ValidationError {
	var c Collector

	c.Add(ValidateDatasetID("id", req.ID))
	c.Add(ValidateRequired("kind", req.Kind))
	if strings.TrimSpace(req.Kind) != "" && len(kinds) > 0 {
		c.Add(ValidateEnum("kind", req.Kind, kinds))
	}
	c.Add(ValidateRequired("name", req.Name))
	c.Add(ValidateMaxLength("name", req.Name, MaxNameLength))
	c.Add(ValidateNoNullBytes("name", req.Name))
	c.Add(ValidateUTF8("name", req.Name))
	c.Add(ValidateMaxLength("description", req.Description, MaxDescriptionLength))
	c.Add(ValidateNoNullBytes("description", req.Description))
	c.Add(ValidateUTF8("description", req.Description))

	if len(req.Fields) > MaxFields {
		c.Add(&ValidationError{
			Field:   "fields",
			Message: fmt.Sprintf("exceeds maximum of %d fields", MaxFields),
		})
	}
	seen := make(map[string]bool, len(req.Fields))
	for i, f := range req.Fields {
		prefix := fmt.Sprintf("fields[%d]", i)
		for _, e := range ValidateFieldConfig(prefix, f) {
			e := e
			c.Add(&e)
		}
		key := strings.ToLower(strings.TrimSpace(f.Name))
		if key != "" && seen[key] {
			c.Add(&ValidationError{Field: prefix + ".name", Message: "duplicates an earlier field"})
		}
		seen[key] = true
	}

	return c.Errors()
}

// ValidateFieldConfig checks one field definition.
func ValidateFieldConfig(prefix string, f aggregate.NamedField) []ValidationError {
	var c Collector
	c.Add(ValidateRequired(prefix+".name", f.Name))
	c.Add(ValidateMaxLength(prefix+".name", f.Name, MaxFieldNameLength))
	c.Add(ValidateEnum(prefix+".type", string(f.Type), aggregate.FieldTypes))
	if f.Type == aggregate.FieldSelect && len(f.CompleteValues) == 0 {
		c.Add(&ValidationError{
			Field:   prefix + ".complete_values",
			Message: "is required for select fields",
		})
	}
	return c.Errors()
}

// ValidateTimelineRequest checks tasks and events. Event task references
// are checked against the tasks that carry explicit IDs.
func ValidateTimelineRequest(req types.TimelineRequest) []ValidationError {
	var c Collector

	taskIDs := make(map[string]bool, len(req.Tasks))
	for i, t := range req.Tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)
		c.Add(ValidateRequired(prefix+".task", t.Task))
		c.Add(ValidateMaxLength(prefix+".task", t.Task, MaxNameLength))
		c.Add(ValidateUTF8(prefix+".task", t.Task))
		c.Add(ValidateUTF8(prefix+".category", t.Category))
		if t.ID == "" {
			continue
		}
		if taskIDs[t.ID] {
			c.Add(&ValidationError{Field: prefix + ".id", Message: "duplicates an earlier task"})
		}
		taskIDs[t.ID] = true
	}

	eventIDs := make(map[string]bool, len(req.Events))
	for i, e := range req.Events {
		prefix := fmt.Sprintf("events[%d]", i)
		if e.ID != "" {
			if eventIDs[e.ID] {
				c.Add(&ValidationError{Field: prefix + ".id", Message: "duplicates an earlier event"})
			}
			eventIDs[e.ID] = true
		}

		if err := ValidateRequired(prefix+".task_id", e.TaskID); err != nil {
			c.Add(err)
		} else if !taskIDs[e.TaskID] {
			c.Add(&ValidationError{Field: prefix + ".task_id", Message: "references an unknown task"})
		}

		startErr := ValidateISODate(prefix+".start_date", e.StartDate)
		endErr := ValidateISODate(prefix+".end_date", e.EndDate)
		c.Add(startErr)
		c.Add(endErr)
		if startErr == nil && endErr == nil {
			c.Add(ValidateDateOrder(prefix+".end_date", e.StartDate, e.EndDate))
		}
	}

	return c.Errors()
}
