package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/hyperengineering/opsboard/internal/config"
	"github.com/hyperengineering/opsboard/internal/store"
	"github.com/spf13/cobra"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Manage datasets",
	Long:  "Create, list, inspect, and delete datasets without running the server.",
}

func init() {
	datasetCmd.AddCommand(datasetCreateCmd)
	datasetCmd.AddCommand(datasetListCmd)
	datasetCmd.AddCommand(datasetInfoCmd)
	datasetCmd.AddCommand(datasetDeleteCmd)
}

// openStore registers schemas and opens the SQLite store for offline
// commands. The --db and --schemas flags win over config.
func openStore() (*store.SQLiteStore, error) {
	schemasDir := schemasDirOverride
	if schemasDir == "" {
		sc, err := config.LoadSchemasConfig()
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		schemasDir = sc.Dir
	}
	if err := initSchemas(schemasDir); err != nil {
		return nil, err
	}

	dbPath := dbPathOverride
	if dbPath == "" {
		dbCfg, err := config.LoadDatabaseConfig()
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		dbPath = dbCfg.Path
	}
	return store.NewSQLiteStore(dbPath)
}

// printJSON marshals v to JSON and writes to the given writer.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newTabWriter returns a configured tabwriter for aligned columns.
func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}
