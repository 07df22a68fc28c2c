package api

import (
	"context"
	"testing"

	"github.com/hyperengineering/opsboard/internal/types"
)

// TestWithDataset_DatasetFromContext_RoundTrip verifies a dataset can be added and extracted.
func TestWithDataset_DatasetFromContext_RoundTrip(t *testing.T) {
	ds := &types.Dataset{ID: "tower", Kind: "construction"}
	ctx := WithDataset(context.Background(), ds)

	got, err := DatasetFromContext(ctx)
	if err != nil {
		t.Fatalf("DatasetFromContext returned error: %v", err)
	}
	if got != ds {
		t.Errorf("got different dataset instance, want same instance")
	}
}

// TestDatasetFromContext_Missing verifies error when no dataset in context.
func TestDatasetFromContext_Missing(t *testing.T) {
	if _, err := DatasetFromContext(context.Background()); err != ErrNoDatasetInContext {
		t.Errorf("error = %v, want ErrNoDatasetInContext", err)
	}
}

// TestDatasetFromContext_Nil verifies error when a nil dataset is in context.
func TestDatasetFromContext_Nil(t *testing.T) {
	ctx := WithDataset(context.Background(), nil)
	if _, err := DatasetFromContext(ctx); err != ErrNoDatasetInContext {
		t.Errorf("error = %v, want ErrNoDatasetInContext", err)
	}
}

// TestMustDatasetFromContext_Panics verifies panic when no dataset in context.
func TestMustDatasetFromContext_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustDatasetFromContext did not panic")
		}
	}()
	MustDatasetFromContext(context.Background())
}

func TestDatasetIDFromContext(t *testing.T) {
	if got := DatasetIDFromContext(context.Background()); got != "" {
		t.Errorf("DatasetIDFromContext() = %q, want empty", got)
	}
	ctx := WithDatasetID(context.Background(), "acme/tower")
	if got := DatasetIDFromContext(ctx); got != "acme/tower" {
		t.Errorf("DatasetIDFromContext() = %q, want acme/tower", got)
	}
}
