package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hyperengineering/opsboard/internal/calendar"
	"github.com/hyperengineering/opsboard/internal/dashboard"
	"github.com/hyperengineering/opsboard/internal/store"
	"github.com/hyperengineering/opsboard/internal/types"
	"github.com/hyperengineering/opsboard/internal/validation"
)

// ReplaceTimeline handles PUT /api/v1/datasets/{id}/timeline
func (h *Handler) ReplaceTimeline(w http.ResponseWriter, r *http.Request) {
	ds := MustDatasetFromContext(r.Context())

	var req types.TimelineRequest
	if !decodeJSON(w, r, MaxTimelineBodyBytes, &req) {
		return
	}
	if errs := validation.ValidateTimelineRequest(req); len(errs) > 0 {
		WriteProblemWithErrors(w, r, "Timeline contains invalid entries", errs)
		return
	}

	if err := h.store.ReplaceTimeline(r.Context(), ds.ID, req.Tasks, req.Events); err != nil {
		if !errors.Is(err, store.ErrUnknownTask) && !errors.Is(err, store.ErrDuplicateID) {
			slog.Error("replace timeline failed", "dataset_id", ds.ID, "error", err)
		}
		MapStoreError(w, r, err)
		return
	}

	slog.Info("timeline replaced",
		"component", "api",
		"action", "timeline_replace",
		"dataset_id", ds.ID,
		"tasks", len(req.Tasks),
		"events", len(req.Events),
	)
	writeJSON(w, http.StatusOK, types.ReplaceTimelineResponse{
		DatasetID: ds.ID,
		Tasks:     len(req.Tasks),
		Events:    len(req.Events),
	})
}

// parseTimelineQuery reads weeks, from, to, now and span.
func parseTimelineQuery(values url.Values) (dashboard.TimelineOptions, error) {
	var opts dashboard.TimelineOptions

	if s := values.Get("weeks"); s != "" {
		for _, d := range strings.Split(s, ",") {
			d = strings.TrimSpace(d)
			if verr := validation.ValidateISODate("weeks", d); verr != nil {
				return opts, fmt.Errorf("weeks entry %q %s", d, verr.Message)
			}
			opts.Weeks = append(opts.Weeks, d)
		}
	}

	for _, p := range []struct {
		name string
		dst  *string
	}{{"from", &opts.From}, {"to", &opts.To}} {
		v := values.Get(p.name)
		if v == "" {
			continue
		}
		if verr := validation.ValidateISODate(p.name, v); verr != nil {
			return opts, fmt.Errorf("%s %s", p.name, verr.Message)
		}
		*p.dst = v
	}
	if opts.From != "" && opts.To != "" {
		if verr := validation.ValidateDateOrder("to", opts.From, opts.To); verr != nil {
			return opts, fmt.Errorf("to %s", verr.Message)
		}
	}

	if s := values.Get("now"); s != "" {
		t, ok := calendar.ParseDate(s, time.UTC)
		if !ok {
			var err error
			if t, err = time.Parse(time.RFC3339, s); err != nil {
				return opts, fmt.Errorf("now must be YYYY-MM-DD or RFC 3339")
			}
		}
		opts.Now = t
	}

	if s := values.Get("span"); s != "" {
		if verr := validation.ValidateEnum("span", s, []string{string(calendar.SpanCollapse), string(calendar.SpanClip)}); verr != nil {
			return opts, fmt.Errorf("span %s", verr.Message)
		}
		opts.Span = calendar.ParseSpanPolicy(s)
	}

	return opts, nil
}

// Timeline handles GET /api/v1/datasets/{id}/timeline
func (h *Handler) Timeline(w http.ResponseWriter, r *http.Request) {
	ds := MustDatasetFromContext(r.Context())

	opts, err := parseTimelineQuery(r.URL.Query())
	if err != nil {
		WriteProblem(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if opts.Now.IsZero() {
		opts.Now = h.now()
	}

	resp, err := h.views.Timeline(r.Context(), ds, opts)
	if err != nil {
		if !errors.Is(err, dashboard.ErrTooManyWeeks) {
			slog.Error("timeline failed", "dataset_id", ds.ID, "error", err)
		}
		MapStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
