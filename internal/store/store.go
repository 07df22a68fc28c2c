package store

import (
	"context"

	"github.com/hyperengineering/opsboard/internal/calendar"
	"github.com/hyperengineering/opsboard/internal/record"
	"github.com/hyperengineering/opsboard/internal/types"
)

// Store defines the interface contract for dataset storage.
type Store interface {
	CreateDataset(ctx context.Context, d types.NewDataset) (*types.Dataset, error)
	EnsureDataset(ctx context.Context, d types.NewDataset) (*types.Dataset, error)
	GetDataset(ctx context.Context, id string) (*types.Dataset, error)
	ListDatasets(ctx context.Context) ([]types.Dataset, error)
	DeleteDataset(ctx context.Context, id string) error
	ReplaceRecords(ctx context.Context, datasetID string, records []record.Record) (int, error)
	ListRecords(ctx context.Context, datasetID string) ([]record.Record, error)
	ReplaceTimeline(ctx context.Context, datasetID string, tasks []calendar.Task, events []calendar.Event) error
	GetTimeline(ctx context.Context, datasetID string) ([]calendar.Task, []calendar.Event, error)
	GetStats(ctx context.Context) (*types.StoreStats, error)
	Close() error
}
