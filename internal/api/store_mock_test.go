package api

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hyperengineering/opsboard/internal/calendar"
	"github.com/hyperengineering/opsboard/internal/record"
	"github.com/hyperengineering/opsboard/internal/store"
	"github.com/hyperengineering/opsboard/internal/types"
)

// memStore is an in-memory store.Store for handler tests.
type memStore struct {
	mu       sync.Mutex
	datasets map[string]*types.Dataset
	records  map[string][]record.Record
	tasks    map[string][]calendar.Task
	events   map[string][]calendar.Event
	statsErr error
}

var _ store.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		datasets: make(map[string]*types.Dataset),
		records:  make(map[string][]record.Record),
		tasks:    make(map[string][]calendar.Task),
		events:   make(map[string][]calendar.Event),
	}
}

func (m *memStore) CreateDataset(ctx context.Context, d types.NewDataset) (*types.Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.datasets[d.ID]; ok {
		return nil, fmt.Errorf("%w: %s", store.ErrDatasetExists, d.ID)
	}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ds := &types.Dataset{
		ID:          d.ID,
		Kind:        d.Kind,
		Name:        d.Name,
		Description: d.Description,
		Fields:      d.Fields,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.datasets[d.ID] = ds
	cp := *ds
	return &cp, nil
}

func (m *memStore) EnsureDataset(ctx context.Context, d types.NewDataset) (*types.Dataset, error) {
	if ds, err := m.GetDataset(ctx, d.ID); err == nil {
		return ds, nil
	}
	return m.CreateDataset(ctx, d)
}

func (m *memStore) GetDataset(ctx context.Context, id string) (*types.Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ds, ok := m.datasets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	cp := *ds
	cp.RecordCount = int64(len(m.records[id]))
	return &cp, nil
}

func (m *memStore) ListDatasets(ctx context.Context) ([]types.Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.Dataset, 0, len(m.datasets))
	for _, ds := range m.datasets {
		out = append(out, *ds)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) DeleteDataset(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.datasets[id]; !ok {
		return fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	delete(m.datasets, id)
	delete(m.records, id)
	delete(m.tasks, id)
	delete(m.events, id)
	return nil
}

func (m *memStore) ReplaceRecords(ctx context.Context, id string, records []record.Record) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.datasets[id]; !ok {
		return 0, fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	m.records[id] = append([]record.Record(nil), records...)
	return len(records), nil
}

func (m *memStore) ListRecords(ctx context.Context, id string) ([]record.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.datasets[id]; !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	return append([]record.Record(nil), m.records[id]...), nil
}

func (m *memStore) ReplaceTimeline(ctx context.Context, id string, tasks []calendar.Task, events []calendar.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.datasets[id]; !ok {
		return fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	known := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		known[t.ID] = true
	}
	for _, e := range events {
		if !known[e.TaskID] {
			return fmt.Errorf("%w: %s", store.ErrUnknownTask, e.TaskID)
		}
	}
	m.tasks[id] = tasks
	m.events[id] = events
	return nil
}

func (m *memStore) GetTimeline(ctx context.Context, id string) ([]calendar.Task, []calendar.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tasks[id], m.events[id], nil
}

func (m *memStore) GetStats(ctx context.Context) (*types.StoreStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.statsErr != nil {
		return nil, m.statsErr
	}
	st := &types.StoreStats{DatasetCount: int64(len(m.datasets))}
	for _, recs := range m.records {
		st.RecordCount += int64(len(recs))
	}
	return st, nil
}

func (m *memStore) Close() error { return nil }
