package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hyperengineering/opsboard/internal/dashboard"
	"github.com/hyperengineering/opsboard/internal/schema"
	"github.com/hyperengineering/opsboard/internal/store"
	"github.com/hyperengineering/opsboard/internal/types"
	"github.com/hyperengineering/opsboard/internal/validation"
)

const (
	// MaxDatasetBodyBytes caps a create dataset body.
	MaxDatasetBodyBytes = 1 << 20

	// MaxRecordsBodyBytes caps a records refresh body.
	MaxRecordsBodyBytes = 32 << 20

	// MaxRecordsPerRefresh caps the rows in one refresh.
	MaxRecordsPerRefresh = 50000

	// MaxTimelineBodyBytes caps a timeline body.
	MaxTimelineBodyBytes = 4 << 20
)

// Handler implements the API handlers
type Handler struct {
	store   store.Store
	views   *dashboard.Service
	apiKey  string
	version string
	now     func() time.Time
}

// NewHandler creates a new Handler. An empty apiKey disables authentication
// (dev mode).
func NewHandler(s store.Store, views *dashboard.Service, apiKey, version string) *Handler {
	return &Handler{
		store:   s,
		views:   views,
		apiKey:  apiKey,
		version: version,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteProblem(w, r, http.StatusRequestEntityTooLarge, fmt.Sprintf("Body exceeds %d bytes", limit))
			return false
		}
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return false
	}
	return true
}

// Health returns the health status
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GetStats(r.Context())
	if err != nil {
		slog.Error("health check failed", "error", err)
		WriteProblem(w, r, http.StatusServiceUnavailable, "Store unavailable")
		return
	}

	writeJSON(w, http.StatusOK, types.HealthResponse{
		Status:       "healthy",
		Version:      h.version,
		DatasetCount: stats.DatasetCount,
		RecordCount:  stats.RecordCount,
		SchemaKinds:  schema.RegisteredKinds(),
	})
}

// CreateDataset handles POST /api/v1/datasets
func (h *Handler) CreateDataset(w http.ResponseWriter, r *http.Request) {
	var req types.CreateDatasetRequest
	if !decodeJSON(w, r, MaxDatasetBodyBytes, &req) {
		return
	}

	if errs := validation.ValidateCreateDataset(req, schema.RegisteredKinds()); len(errs) > 0 {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", errs)
		return
	}

	ds, err := h.store.CreateDataset(r.Context(), req)
	if err != nil {
		if !errors.Is(err, store.ErrDatasetExists) {
			slog.Error("create dataset failed", "dataset_id", req.ID, "error", err)
		}
		MapStoreError(w, r, err)
		return
	}

	slog.Info("dataset created",
		"component", "api",
		"action", "dataset_create",
		"dataset_id", ds.ID,
		"kind", ds.Kind,
	)
	writeJSON(w, http.StatusCreated, ds)
}

// ListDatasets handles GET /api/v1/datasets
func (h *Handler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	datasets, err := h.store.ListDatasets(r.Context())
	if err != nil {
		slog.Error("list datasets failed", "error", err)
		MapStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.DatasetListResponse{Datasets: datasets, Total: len(datasets)})
}

// GetDataset handles GET /api/v1/datasets/{id}
func (h *Handler) GetDataset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MustDatasetFromContext(r.Context()))
}

// DeleteDataset handles DELETE /api/v1/datasets/{id}
func (h *Handler) DeleteDataset(w http.ResponseWriter, r *http.Request) {
	ds := MustDatasetFromContext(r.Context())

	if err := h.store.DeleteDataset(r.Context(), ds.ID); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.Error("delete dataset failed", "dataset_id", ds.ID, "error", err)
		}
		MapStoreError(w, r, err)
		return
	}
	h.views.Invalidate(ds.ID)

	slog.Info("dataset deleted",
		"component", "api",
		"action", "dataset_delete",
		"dataset_id", ds.ID,
	)
	w.WriteHeader(http.StatusNoContent)
}

// ReplaceRecords handles PUT /api/v1/datasets/{id}/records
func (h *Handler) ReplaceRecords(w http.ResponseWriter, r *http.Request) {
	ds := MustDatasetFromContext(r.Context())

	var req types.ReplaceRecordsRequest
	if !decodeJSON(w, r, MaxRecordsBodyBytes, &req) {
		return
	}
	if len(req.Records) > MaxRecordsPerRefresh {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", []validation.ValidationError{{
			Field:   "records",
			Message: fmt.Sprintf("exceeds maximum of %d records", MaxRecordsPerRefresh),
		}})
		return
	}

	start := time.Now()
	n, err := h.store.ReplaceRecords(r.Context(), ds.ID, req.Records)
	if err != nil {
		slog.Error("replace records failed", "dataset_id", ds.ID, "error", err)
		MapStoreError(w, r, err)
		return
	}
	h.views.Invalidate(ds.ID)

	slog.Info("records replaced",
		"component", "api",
		"action", "records_replace",
		"dataset_id", ds.ID,
		"replaced", n,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	writeJSON(w, http.StatusOK, types.ReplaceRecordsResponse{
		DatasetID: ds.ID,
		Replaced:  n,
		AsOf:      h.now(),
	})
}

// Summary handles GET /api/v1/datasets/{id}/summary
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	ds := MustDatasetFromContext(r.Context())

	resp, err := h.views.Summary(r.Context(), ds)
	if err != nil {
		if !errors.Is(err, schema.ErrUnknownKind) {
			slog.Error("summary failed", "dataset_id", ds.ID, "error", err)
		}
		MapStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Groups handles GET /api/v1/datasets/{id}/groups?by=<name>[&order=alpha]
func (h *Handler) Groups(w http.ResponseWriter, r *http.Request) {
	ds := MustDatasetFromContext(r.Context())
	q := r.URL.Query()

	by := q.Get("by")
	if by == "" {
		WriteProblem(w, r, http.StatusBadRequest, "Query parameter 'by' is required")
		return
	}
	order := q.Get("order")
	if order != "" && order != "alpha" {
		WriteProblem(w, r, http.StatusBadRequest, "Query parameter 'order' must be 'alpha' when set")
		return
	}

	resp, err := h.views.Groups(r.Context(), ds, by, order == "alpha")
	if err != nil {
		if !errors.Is(err, dashboard.ErrUnknownGroup) && !errors.Is(err, schema.ErrUnknownKind) {
			slog.Error("groups failed", "dataset_id", ds.ID, "by", by, "error", err)
		}
		MapStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
