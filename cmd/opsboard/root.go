package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/hyperengineering/opsboard/internal/api"
	"github.com/hyperengineering/opsboard/internal/config"
	"github.com/hyperengineering/opsboard/internal/dashboard"
	"github.com/hyperengineering/opsboard/internal/metrics"
	"github.com/hyperengineering/opsboard/internal/store"
	"github.com/hyperengineering/opsboard/internal/worker"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags: -ldflags "-X main.Version=1.0.0"
var Version = "dev"

var (
	dbPathOverride     string
	schemasDirOverride string
	jsonOutput         bool
)

var rootCmd = &cobra.Command{
	Use:          "opsboard",
	Short:        "Opsboard - spreadsheet progress dashboards",
	Long:         "Serves completion summaries, groupings and weekly timelines over imported spreadsheet datasets.",
	SilenceUsage: true,
	RunE:         run,
	Version:      Version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPathOverride, "db", "",
		"Database path (overrides config and OPSBOARD_DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&schemasDirOverride, "schemas", "",
		"Schema directory (overrides config and OPSBOARD_SCHEMAS_DIR)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Output in JSON format")

	rootCmd.AddCommand(datasetCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(timelineCmd)
}

func run(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if dbPathOverride != "" {
		cfg.Database.Path = dbPathOverride
	}
	if schemasDirOverride != "" {
		cfg.Schemas.Dir = schemasDirOverride
	}

	slog.SetDefault(newLogger(os.Stdout, cfg.Log))
	slog.Info("logger initialized", "level", cfg.Log.Level, "format", cfg.Log.Format)

	if err := initSchemas(cfg.Schemas.Dir); err != nil {
		return err
	}

	db, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return err
	}
	slog.Info("store initialized", "path", cfg.Database.Path)

	m := metrics.New()
	views := dashboard.New(db, time.Duration(cfg.Cache.TTL), m)

	apiKey := cfg.Auth.APIKey
	if cfg.Auth.DevMode {
		slog.Warn("dev mode enabled, API authentication disabled")
		apiKey = ""
	}
	handler := api.NewHandler(db, views, apiKey, Version)
	router := api.NewRouter(handler, m)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout),
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout),
	}

	var wg sync.WaitGroup
	if interval := time.Duration(cfg.Worker.RefreshInterval); interval > 0 {
		refresher := worker.NewSummaryRefreshWorker(views, interval, m)
		startWorker(ctx, &wg, "summary-refresh", refresher.Run)
	}

	go func() {
		slog.Info("server starting", "address", addr, "version", Version)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("shutdown initiated")

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout))
	defer shutdownCancel()

	// Drain requests first, then workers, then the store they share.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	wg.Wait()
	if err := db.Close(); err != nil {
		slog.Error("store close error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// startWorker launches a background worker goroutine that respects context cancellation.
// Workers are tracked via WaitGroup for graceful shutdown.
func startWorker(ctx context.Context, wg *sync.WaitGroup, name string, fn func(ctx context.Context)) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		slog.Info("worker launched", "worker", name)
		fn(ctx)
		slog.Info("worker exited", "worker", name)
	}()
}
