package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/hyperengineering/opsboard/internal/validation"
	"github.com/spf13/cobra"
)

var deleteForce bool

var datasetDeleteCmd = &cobra.Command{
	Use:   "delete <dataset-id>",
	Short: "Delete a dataset and all its data",
	Long:  "Permanently delete a dataset with its records and timeline. Requires --force or interactive confirmation.",
	Args:  cobra.ExactArgs(1),
	RunE:  runDatasetDelete,
}

func init() {
	datasetDeleteCmd.Flags().BoolVar(&deleteForce, "force", false,
		"Skip confirmation prompt")
}

func runDatasetDelete(cmd *cobra.Command, args []string) error {
	datasetID := args[0]
	if verr := validation.ValidateDatasetID("dataset-id", datasetID); verr != nil {
		return fmt.Errorf("invalid dataset ID %q: %s", datasetID, verr.Message)
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	if _, err := db.GetDataset(ctx, datasetID); err != nil {
		return err
	}

	if !deleteForce {
		errOut := cmd.ErrOrStderr()
		fmt.Fprintf(errOut, "WARNING: This will permanently delete dataset %q and all its data.\n", datasetID)
		fmt.Fprint(errOut, "Type the dataset ID to confirm: ")

		reader := bufio.NewReader(cmd.InOrStdin())
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if strings.TrimSpace(input) != datasetID {
			fmt.Fprintln(errOut, "Aborted. Dataset ID did not match.")
			return nil
		}
	}

	if err := db.DeleteDataset(ctx, datasetID); err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"id":      datasetID,
			"deleted": true,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted dataset %q\n", datasetID)
	return nil
}
