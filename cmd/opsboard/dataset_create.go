package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hyperengineering/opsboard/internal/aggregate"
	"github.com/hyperengineering/opsboard/internal/schema"
	"github.com/hyperengineering/opsboard/internal/store"
	"github.com/hyperengineering/opsboard/internal/types"
	"github.com/hyperengineering/opsboard/internal/validation"
	"github.com/spf13/cobra"
)

var (
	createKind        string
	createName        string
	createDescription string
	createCheckboxes  []string
	createIfNotExists bool
)

var datasetCreateCmd = &cobra.Command{
	Use:   "create <dataset-id>",
	Short: "Create a new dataset",
	Long:  "Create a dataset of the given kind. Dataset IDs are lowercase alphanumeric with hyphens, optionally separated by / for namespacing (e.g., acme/tower).",
	Args:  cobra.ExactArgs(1),
	RunE:  runDatasetCreate,
}

func init() {
	datasetCreateCmd.Flags().StringVar(&createKind, "kind", "generic",
		"Dataset kind: construction, invoices, deals, containers, generic, or a schema file kind")
	datasetCreateCmd.Flags().StringVar(&createName, "name", "",
		"Display name (default: the dataset ID)")
	datasetCreateCmd.Flags().StringVar(&createDescription, "description", "",
		"Human-readable description")
	datasetCreateCmd.Flags().StringSliceVar(&createCheckboxes, "checkbox", nil,
		"Track a checkbox field, overriding the kind's fields (repeatable)")
	datasetCreateCmd.Flags().BoolVar(&createIfNotExists, "if-not-exists", false,
		"Exit 0 if dataset already exists")
}

func runDatasetCreate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	req := types.NewDataset{
		ID:          args[0],
		Kind:        createKind,
		Name:        createName,
		Description: createDescription,
	}
	if req.Name == "" {
		req.Name = req.ID
	}
	for _, name := range createCheckboxes {
		req.Fields = append(req.Fields, schema.Checkbox(strings.TrimSpace(name)))
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if errs := validation.ValidateCreateDataset(req, schema.RegisteredKinds()); len(errs) > 0 {
		return validationError("dataset", errs)
	}

	ds, err := db.CreateDataset(ctx, req)
	if err != nil {
		if errors.Is(err, store.ErrDatasetExists) && createIfNotExists {
			existing, loadErr := db.GetDataset(ctx, req.ID)
			if loadErr != nil {
				return fmt.Errorf("dataset exists but could not be loaded: %w", loadErr)
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"dataset":         existing,
					"already_existed": true,
				})
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Dataset %q already exists (kind: %s)\n", existing.ID, existing.Kind)
			return nil
		}
		return err
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), ds)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created dataset %q (kind: %s, %s)\n", ds.ID, ds.Kind, describeFields(ds.Fields))
	return nil
}

func validationError(what string, errs []validation.ValidationError) error {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Field+" "+e.Message)
	}
	return fmt.Errorf("invalid %s: %s", what, strings.Join(parts, "; "))
}

func describeFields(fields []aggregate.NamedField) string {
	if len(fields) == 0 {
		return "schema fields"
	}
	return fmt.Sprintf("%d custom fields", len(fields))
}
