package main

import (
	"context"
	"fmt"

	"github.com/hyperengineering/opsboard/internal/types"
	"github.com/spf13/cobra"
)

var datasetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all datasets",
	Args:  cobra.NoArgs,
	RunE:  runDatasetList,
}

func runDatasetList(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	datasets, err := db.ListDatasets(context.Background())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, types.DatasetListResponse{Datasets: datasets, Total: len(datasets)})
	}

	if len(datasets) == 0 {
		fmt.Fprintln(out, "No datasets found.")
		return nil
	}

	tw := newTabWriter(out)
	fmt.Fprintln(tw, "ID\tKIND\tNAME\tRECORDS\tEVENTS\tUPDATED")
	for _, d := range datasets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
			d.ID, d.Kind, d.Name, d.RecordCount, d.EventCount,
			d.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}
