package types

import (
	"encoding/json"
	"time"

	"github.com/hyperengineering/opsboard/internal/aggregate"
	"github.com/hyperengineering/opsboard/internal/calendar"
	"github.com/hyperengineering/opsboard/internal/record"
)

// Dataset is one imported spreadsheet plus its optional timeline.
type Dataset struct {
	ID          string                 `json:"id"`
	Kind        string                 `json:"kind"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Fields      []aggregate.NamedField `json:"fields"`
	RecordCount int64                  `json:"record_count"`
	TaskCount   int64                  `json:"task_count"`
	EventCount  int64                  `json:"event_count"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	RefreshedAt *time.Time             `json:"refreshed_at,omitempty"`
}

// NewDataset is the input type for creating a dataset (without generated fields).
// Fields overrides the kind's schema when non-empty.
type NewDataset struct {
	ID          string                 `json:"id"`
	Kind        string                 `json:"kind"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Fields      []aggregate.NamedField `json:"fields,omitempty"`
}

// CreateDatasetRequest is the body of POST /api/v1/datasets.
type CreateDatasetRequest = NewDataset

// DatasetListResponse is the body of GET /api/v1/datasets.
type DatasetListResponse struct {
	Datasets []Dataset `json:"datasets"`
	Total    int       `json:"total"`
}

// StoreStats holds aggregate store statistics.
type StoreStats struct {
	DatasetCount int64 `json:"dataset_count"`
	RecordCount  int64 `json:"record_count"`
	TaskCount    int64 `json:"task_count"`
	EventCount   int64 `json:"event_count"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status       string   `json:"status"`
	Version      string   `json:"version"`
	DatasetCount int64    `json:"dataset_count"`
	RecordCount  int64    `json:"record_count"`
	SchemaKinds  []string `json:"schema_kinds"`
}

// ReplaceRecordsRequest is the body of PUT /datasets/{id}/records.
type ReplaceRecordsRequest struct {
	Records []record.Record `json:"records"`
}

// ReplaceRecordsResponse reports a completed refresh.
type ReplaceRecordsResponse struct {
	DatasetID string    `json:"dataset_id"`
	Replaced  int       `json:"replaced"`
	AsOf      time.Time `json:"as_of"`
}

// RecordsResponse is one page of filtered, sorted records.
type RecordsResponse struct {
	Records    []record.Record `json:"records"`
	Matched    int             `json:"matched"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

// SummaryResponse is the dataset-wide completion overview.
type SummaryResponse struct {
	DatasetID   string                      `json:"dataset_id"`
	Kind        string                      `json:"kind"`
	RecordCount int                         `json:"record_count"`
	Summary     aggregate.CompletionSummary `json:"summary"`
	Tasks       []aggregate.TaskRank        `json:"tasks"`
	Totals      *aggregate.Totals           `json:"totals,omitempty"`
	ComputedAt  time.Time                   `json:"computed_at"`
}

// GroupEntry is one group in a GroupsResponse.
type GroupEntry struct {
	Label   string                      `json:"label"`
	Numeric bool                        `json:"numeric"`
	Count   int                         `json:"count"`
	Summary aggregate.CompletionSummary `json:"summary"`
	Totals  *aggregate.Totals           `json:"totals,omitempty"`
}

// GroupsResponse is the body of GET /datasets/{id}/groups.
type GroupsResponse struct {
	DatasetID  string       `json:"dataset_id"`
	By         string       `json:"by"`
	Groups     []GroupEntry `json:"groups"`
	ComputedAt time.Time    `json:"computed_at"`
}

// TimelineRequest is the body of PUT /datasets/{id}/timeline.
type TimelineRequest struct {
	Tasks  []calendar.Task  `json:"tasks"`
	Events []calendar.Event `json:"events"`
}

// ReplaceTimelineResponse reports a stored timeline.
type ReplaceTimelineResponse struct {
	DatasetID string `json:"dataset_id"`
	Tasks     int    `json:"tasks"`
	Events    int    `json:"events"`
}

// TimelineResponse is a render-ready grid.
type TimelineResponse struct {
	DatasetID  string                  `json:"dataset_id"`
	Span       calendar.SpanPolicy     `json:"span"`
	Grid       calendar.Grid           `json:"grid"`
	Categories []calendar.TaskCategory `json:"categories"`
}

// MarshalJSON ensures a nil field list marshals as [] not null.
func (d Dataset) MarshalJSON() ([]byte, error) {
	if d.Fields == nil {
		d.Fields = []aggregate.NamedField{}
	}
	type Alias Dataset
	return json.Marshal(Alias(d))
}

// MarshalJSON ensures nil slices in DatasetListResponse marshal as [] not null.
func (r DatasetListResponse) MarshalJSON() ([]byte, error) {
	if r.Datasets == nil {
		r.Datasets = []Dataset{}
	}
	type Alias DatasetListResponse
	return json.Marshal(Alias(r))
}

// MarshalJSON ensures nil slices in HealthResponse marshal as [] not null.
func (h HealthResponse) MarshalJSON() ([]byte, error) {
	if h.SchemaKinds == nil {
		h.SchemaKinds = []string{}
	}
	type Alias HealthResponse
	return json.Marshal(Alias(h))
}

// MarshalJSON ensures nil slices in RecordsResponse marshal as [] not null.
func (r RecordsResponse) MarshalJSON() ([]byte, error) {
	if r.Records == nil {
		r.Records = []record.Record{}
	}
	type Alias RecordsResponse
	return json.Marshal(Alias(r))
}

// MarshalJSON ensures nil slices in SummaryResponse marshal as [] not null.
func (s SummaryResponse) MarshalJSON() ([]byte, error) {
	if s.Tasks == nil {
		s.Tasks = []aggregate.TaskRank{}
	}
	type Alias SummaryResponse
	return json.Marshal(Alias(s))
}

// MarshalJSON ensures nil slices in GroupsResponse marshal as [] not null.
func (g GroupsResponse) MarshalJSON() ([]byte, error) {
	if g.Groups == nil {
		g.Groups = []GroupEntry{}
	}
	type Alias GroupsResponse
	return json.Marshal(Alias(g))
}

// MarshalJSON ensures nil slices in TimelineResponse marshal as [] not null.
func (t TimelineResponse) MarshalJSON() ([]byte, error) {
	if t.Categories == nil {
		t.Categories = []calendar.TaskCategory{}
	}
	type Alias TimelineResponse
	return json.Marshal(Alias(t))
}
