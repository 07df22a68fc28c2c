package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hyperengineering/opsboard/internal/record"
	"github.com/hyperengineering/opsboard/internal/schema"
	"github.com/hyperengineering/opsboard/internal/types"
	"github.com/hyperengineering/opsboard/internal/validation"
	"github.com/spf13/cobra"
)

var (
	importKind     string
	importTimeline string
)

var importCmd = &cobra.Command{
	Use:   "import <dataset-id> <records.csv|records.json>",
	Short: "Replace a dataset's records from a CSV or JSON export",
	Long: `Replace every record of a dataset from a spreadsheet export.

CSV files use the first row as field names. JSON files hold either an array
of record objects or an object with a "records" array. With --kind the
dataset is created when missing. With --timeline the dataset's tasks and
events are replaced from a JSON file as well.`,
	Args: cobra.ExactArgs(2),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importKind, "kind", "",
		"Create the dataset with this kind if it does not exist")
	importCmd.Flags().StringVar(&importTimeline, "timeline", "",
		"JSON file with tasks and events to store alongside the records")
}

func runImport(cmd *cobra.Command, args []string) error {
	datasetID, path := args[0], args[1]
	ctx := context.Background()

	records, err := readRecordsFile(path)
	if err != nil {
		return err
	}

	var timeline *types.TimelineRequest
	if importTimeline != "" {
		timeline, err = readTimelineFile(importTimeline)
		if err != nil {
			return err
		}
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if importKind != "" {
		req := types.NewDataset{ID: datasetID, Kind: importKind, Name: datasetID}
		if errs := validation.ValidateCreateDataset(req, schema.RegisteredKinds()); len(errs) > 0 {
			return validationError("dataset", errs)
		}
		if _, err := db.EnsureDataset(ctx, req); err != nil {
			return err
		}
	} else if _, err := db.GetDataset(ctx, datasetID); err != nil {
		return err
	}

	n, err := db.ReplaceRecords(ctx, datasetID, records)
	if err != nil {
		return err
	}
	if timeline != nil {
		if err := db.ReplaceTimeline(ctx, datasetID, timeline.Tasks, timeline.Events); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		resp := map[string]any{
			"records": types.ReplaceRecordsResponse{DatasetID: datasetID, Replaced: n, AsOf: time.Now().UTC()},
		}
		if timeline != nil {
			resp["timeline"] = types.ReplaceTimelineResponse{
				DatasetID: datasetID,
				Tasks:     len(timeline.Tasks),
				Events:    len(timeline.Events),
			}
		}
		return printJSON(out, resp)
	}

	fmt.Fprintf(out, "Imported %d records into %q\n", n, datasetID)
	if timeline != nil {
		fmt.Fprintf(out, "Imported %d tasks and %d events into %q\n", len(timeline.Tasks), len(timeline.Events), datasetID)
	}
	return nil
}

// readRecordsFile loads records from a CSV or JSON file, chosen by
// extension.
func readRecordsFile(path string) ([]record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open records file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSVRecords(f)
	case ".json":
		return readJSONRecords(f)
	default:
		return nil, fmt.Errorf("unsupported records file %q: want .csv or .json", path)
	}
}

// readCSVRecords reads a header row followed by data rows. Blank cells
// become nil and rows with no values are skipped.
func readCSVRecords(r io.Reader) ([]record.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []record.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	out := []record.Record{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		values := make([]any, len(row))
		blank := true
		for i, cell := range row {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			values[i] = cell
			blank = false
		}
		if blank {
			continue
		}
		out = append(out, record.FromPairs(header, values))
	}
	return out, nil
}

func readJSONRecords(r io.Reader) ([]record.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read records file: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("{")) {
		var req types.ReplaceRecordsRequest
		if err := json.Unmarshal(trimmed, &req); err != nil {
			return nil, fmt.Errorf("parse records file: %w", err)
		}
		if req.Records == nil {
			return []record.Record{}, nil
		}
		return req.Records, nil
	}

	records := []record.Record{}
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("parse records file: %w", err)
	}
	return records, nil
}

func readTimelineFile(path string) (*types.TimelineRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open timeline file: %w", err)
	}
	var req types.TimelineRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("parse timeline file: %w", err)
	}
	if errs := validation.ValidateTimelineRequest(req); len(errs) > 0 {
		return nil, validationError("timeline", errs)
	}
	return &req, nil
}
