package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var datasetInfoCmd = &cobra.Command{
	Use:   "info <dataset-id>",
	Short: "Show detailed information about a dataset",
	Args:  cobra.ExactArgs(1),
	RunE:  runDatasetInfo,
}

func runDatasetInfo(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	ds, err := db.GetDataset(context.Background(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, ds)
	}

	fmt.Fprintf(out, "Dataset:     %s\n", ds.ID)
	fmt.Fprintf(out, "Kind:        %s\n", ds.Kind)
	fmt.Fprintf(out, "Name:        %s\n", ds.Name)
	if ds.Description != "" {
		fmt.Fprintf(out, "Description: %s\n", ds.Description)
	}
	fmt.Fprintf(out, "Fields:      %s\n", describeFields(ds.Fields))
	fmt.Fprintf(out, "Records:     %d\n", ds.RecordCount)
	fmt.Fprintf(out, "Timeline:    %d tasks, %d events\n", ds.TaskCount, ds.EventCount)
	fmt.Fprintf(out, "Created:     %s\n", ds.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(out, "Updated:     %s\n", ds.UpdatedAt.Format("2006-01-02 15:04:05 MST"))
	if ds.RefreshedAt != nil {
		fmt.Fprintf(out, "Refreshed:   %s\n", ds.RefreshedAt.Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}
