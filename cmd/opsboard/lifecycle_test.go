package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hyperengineering/opsboard/internal/config"
	"github.com/hyperengineering/opsboard/internal/dashboard"
	"github.com/hyperengineering/opsboard/internal/metrics"
	"github.com/hyperengineering/opsboard/internal/schema"
	"github.com/hyperengineering/opsboard/internal/store"
	"github.com/hyperengineering/opsboard/internal/types"
	"github.com/hyperengineering/opsboard/internal/worker"
)

// logCapture captures slog output for testing
type logCapture struct {
	mu      sync.Mutex
	entries []map[string]any
}

func (c *logCapture) handler() slog.Handler {
	return slog.NewJSONHandler(c, &slog.HandlerOptions{Level: slog.LevelDebug})
}

func (c *logCapture) Write(p []byte) (n int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var entry map[string]any
	if err := json.Unmarshal(p, &entry); err == nil {
		c.entries = append(c.entries, entry)
	}
	return len(p), nil
}

func (c *logCapture) find(msg string) map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		if e["msg"] == msg {
			return e
		}
	}
	return nil
}

func captureDefault(t *testing.T) *logCapture {
	t.Helper()
	capture := &logCapture{}
	old := slog.Default()
	slog.SetDefault(slog.New(capture.handler()))
	t.Cleanup(func() { slog.SetDefault(old) })
	return capture
}

func TestStartWorker_TracksCompletion(t *testing.T) {
	capture := captureDefault(t)

	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(context.Background())

	var ran atomic.Bool
	startWorker(ctx, &wg, "test-worker", func(ctx context.Context) {
		ran.Store(true)
		<-ctx.Done()
	})

	cancel()
	wg.Wait()

	if !ran.Load() {
		t.Error("worker function was not called")
	}
	for _, msg := range []string{"worker launched", "worker exited"} {
		e := capture.find(msg)
		if e == nil {
			t.Errorf("missing %q log", msg)
			continue
		}
		if e["worker"] != "test-worker" {
			t.Errorf("%q worker = %v, want test-worker", msg, e["worker"])
		}
	}
}

func TestStartWorker_WaitsForCleanup(t *testing.T) {
	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(context.Background())

	var completed atomic.Bool
	startWorker(ctx, &wg, "slow-worker", func(ctx context.Context) {
		<-ctx.Done()
		time.Sleep(20 * time.Millisecond)
		completed.Store(true)
	})

	cancel()
	wg.Wait()

	if !completed.Load() {
		t.Error("wg.Wait() returned before worker completed")
	}
}

func TestSummaryRefreshWorker_WiredToStore(t *testing.T) {
	capture := captureDefault(t)
	schema.Reset()
	t.Cleanup(schema.Reset)
	if err := initSchemas(""); err != nil {
		t.Fatalf("initSchemas: %v", err)
	}

	db, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	for _, id := range []string{"tower", "ledger"} {
		if _, err := db.CreateDataset(ctx, types.NewDataset{ID: id, Kind: "construction", Name: id}); err != nil {
			t.Fatalf("CreateDataset(%s): %v", id, err)
		}
	}

	m := metrics.New()
	views := dashboard.New(db, time.Minute, m)
	w := worker.NewSummaryRefreshWorker(views, time.Hour, m)

	var wg sync.WaitGroup
	runCtx, cancel := context.WithCancel(ctx)
	startWorker(runCtx, &wg, "summary-refresh", w.Run)

	deadline := time.Now().Add(2 * time.Second)
	for capture.find("refresh cycle completed") == nil && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	wg.Wait()

	e := capture.find("refresh cycle completed")
	if e == nil {
		t.Fatal("refresh cycle did not complete")
	}
	if e["refreshed"] != float64(2) {
		t.Errorf("refreshed = %v, want 2", e["refreshed"])
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, config.LogConfig{Level: "info", Format: "json"}).Info("hello", "k", "v")
	if !strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), `"k":"v"`) {
		t.Errorf("json output = %q", buf.String())
	}

	buf.Reset()
	newLogger(&buf, config.LogConfig{Level: "info", Format: "text"}).Info("hello", "k", "v")
	if !strings.Contains(buf.String(), "msg=hello") || !strings.Contains(buf.String(), "k=v") {
		t.Errorf("text output = %q", buf.String())
	}

	buf.Reset()
	newLogger(&buf, config.LogConfig{Level: "warn", Format: "text"}).Info("quiet")
	if buf.Len() != 0 {
		t.Errorf("info logged at warn level: %q", buf.String())
	}
}
