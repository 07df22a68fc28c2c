package store

import (
	"context"

	"github.com/hyperengineering/opsboard/internal/calendar"
	"github.com/hyperengineering/opsboard/internal/record"
	"github.com/hyperengineering/opsboard/internal/types"
)

// mockStore is a compile-time check that the Store interface can be implemented.
type mockStore struct{}

var _ Store = (*mockStore)(nil)

func (m *mockStore) CreateDataset(ctx context.Context, d types.NewDataset) (*types.Dataset, error) {
	return nil, nil
}
func (m *mockStore) EnsureDataset(ctx context.Context, d types.NewDataset) (*types.Dataset, error) {
	return nil, nil
}
func (m *mockStore) GetDataset(ctx context.Context, id string) (*types.Dataset, error) {
	return nil, nil
}
func (m *mockStore) ListDatasets(ctx context.Context) ([]types.Dataset, error) {
	return nil, nil
}
func (m *mockStore) DeleteDataset(ctx context.Context, id string) error {
	return nil
}
func (m *mockStore) ReplaceRecords(ctx context.Context, datasetID string, records []record.Record) (int, error) {
	return 0, nil
}
func (m *mockStore) ListRecords(ctx context.Context, datasetID string) ([]record.Record, error) {
	return nil, nil
}
func (m *mockStore) ReplaceTimeline(ctx context.Context, datasetID string, tasks []calendar.Task, events []calendar.Event) error {
	return nil
}
func (m *mockStore) GetTimeline(ctx context.Context, datasetID string) ([]calendar.Task, []calendar.Event, error) {
	return nil, nil, nil
}
func (m *mockStore) GetStats(ctx context.Context) (*types.StoreStats, error) {
	return nil, nil
}
func (m *mockStore) Close() error {
	return nil
}
