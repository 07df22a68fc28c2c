package worker

import (
	"context"
	"log/slog"
	"time"
)

// Refresher recomputes cached dataset summaries.
type Refresher interface {
	RefreshAll(ctx context.Context) (int, error)
}

// RunRecorder observes refresh runs. metrics.Metrics satisfies it.
type RunRecorder interface {
	RefreshRun(datasets int, err error)
}

// SummaryRefreshWorker periodically recomputes every dataset summary so API
// reads are served warm.
type SummaryRefreshWorker struct {
	refresher Refresher
	interval  time.Duration
	recorder  RunRecorder
}

// NewSummaryRefreshWorker creates a worker with the given refresher and
// interval. recorder may be nil.
func NewSummaryRefreshWorker(refresher Refresher, interval time.Duration, recorder RunRecorder) *SummaryRefreshWorker {
	return &SummaryRefreshWorker{
		refresher: refresher,
		interval:  interval,
		recorder:  recorder,
	}
}

// Run starts the worker loop. Refreshes immediately on start, then on each
// interval. Blocks until ctx is cancelled.
func (w *SummaryRefreshWorker) Run(ctx context.Context) {
	slog.Info("worker started",
		"component", "worker",
		"worker", "summary-refresh",
		"interval", w.interval.String(),
	)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("worker stopped",
				"component", "worker",
				"worker", "summary-refresh",
				"reason", "context_cancelled",
			)
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

// refresh executes a single refresh cycle.
func (w *SummaryRefreshWorker) refresh(ctx context.Context) {
	start := time.Now()

	slog.Debug("refresh cycle started",
		"component", "worker",
		"action", "refresh_start",
	)

	n, err := w.refresher.RefreshAll(ctx)
	if err != nil && ctx.Err() != nil {
		// Shutting down.
		return
	}
	if w.recorder != nil {
		w.recorder.RefreshRun(n, err)
	}
	if err != nil {
		slog.Warn("refresh cycle failed",
			"component", "worker",
			"action", "refresh_failed",
			"refreshed", n,
			"error", err,
		)
		return
	}

	slog.Info("refresh cycle completed",
		"component", "worker",
		"action", "refresh_complete",
		"refreshed", n,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
