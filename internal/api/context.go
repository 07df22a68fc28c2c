package api

import (
	"context"
	"errors"

	"github.com/hyperengineering/opsboard/internal/types"
)

// datasetContextKey is the context key for the resolved dataset.
type datasetContextKey struct{}

// datasetIDContextKey is the context key for the dataset ID (for logging).
type datasetIDContextKey struct{}

// ErrNoDatasetInContext indicates no dataset was found in the context.
var ErrNoDatasetInContext = errors.New("no dataset in context")

// WithDataset returns a new context with the dataset attached.
func WithDataset(ctx context.Context, d *types.Dataset) context.Context {
	return context.WithValue(ctx, datasetContextKey{}, d)
}

// DatasetFromContext extracts the dataset from the context.
// Returns ErrNoDatasetInContext if not present or nil.
func DatasetFromContext(ctx context.Context) (*types.Dataset, error) {
	d, ok := ctx.Value(datasetContextKey{}).(*types.Dataset)
	if !ok || d == nil {
		return nil, ErrNoDatasetInContext
	}
	return d, nil
}

// MustDatasetFromContext extracts the dataset or panics.
// Use only when middleware guarantees dataset presence.
func MustDatasetFromContext(ctx context.Context) *types.Dataset {
	d, err := DatasetFromContext(ctx)
	if err != nil {
		panic("dataset not in context: middleware misconfiguration")
	}
	return d
}

// WithDatasetID returns a new context with the dataset ID attached.
func WithDatasetID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, datasetIDContextKey{}, id)
}

// DatasetIDFromContext extracts the dataset ID from the context.
// Returns "" if not present.
func DatasetIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(datasetIDContextKey{}).(string)
	return id
}
