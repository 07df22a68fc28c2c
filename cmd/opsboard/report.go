package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hyperengineering/opsboard/internal/aggregate"
	"github.com/hyperengineering/opsboard/internal/dashboard"
	"github.com/hyperengineering/opsboard/internal/types"
	"github.com/spf13/cobra"
)

var (
	reportGroupBy string
	reportAlpha   bool
)

var reportCmd = &cobra.Command{
	Use:   "report <dataset-id>",
	Short: "Print a dataset's completion summary",
	Long:  "Print the completion summary and per-task ranking of a dataset, or with --group-by its summary per group.",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportGroupBy, "group-by", "",
		"Group records by a named grouping of the dataset's kind")
	reportCmd.Flags().BoolVar(&reportAlpha, "alpha", false,
		"Order groups by label")
}

func runReport(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	ds, err := db.GetDataset(ctx, args[0])
	if err != nil {
		return err
	}
	views := dashboard.New(db, 0, nil)
	out := cmd.OutOrStdout()

	if reportGroupBy != "" {
		groups, err := views.Groups(ctx, ds, reportGroupBy, reportAlpha)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(out, groups)
		}
		return printGroups(out, groups)
	}

	summary, err := views.Summary(ctx, ds)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(out, summary)
	}
	return printSummary(out, ds, summary)
}

func printSummary(out io.Writer, ds *types.Dataset, s types.SummaryResponse) error {
	fmt.Fprintf(out, "Dataset:   %s (%s)\n", ds.ID, ds.Kind)
	fmt.Fprintf(out, "Records:   %d\n", s.RecordCount)
	fmt.Fprintf(out, "Complete:  %s\n", formatCompletion(s.Summary))
	if s.Totals != nil {
		fmt.Fprintf(out, "Totals:    %s\n", formatTotals(*s.Totals))
	}
	if len(s.Tasks) == 0 {
		return nil
	}

	fmt.Fprintln(out)
	tw := newTabWriter(out)
	fmt.Fprintln(tw, "TASK\tDONE\tAPPLICABLE\tN/A\tPERCENT")
	for _, t := range s.Tasks {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d%%\n",
			t.Field, t.Summary.Completed, t.Summary.Applicable, t.Summary.NA, t.Summary.Percentage)
	}
	return tw.Flush()
}

func printGroups(out io.Writer, g types.GroupsResponse) error {
	if len(g.Groups) == 0 {
		fmt.Fprintln(out, "No records to group.")
		return nil
	}

	withTotals := g.Groups[0].Totals != nil
	tw := newTabWriter(out)
	if withTotals {
		fmt.Fprintf(tw, "%s\tCOUNT\tDONE\tAPPLICABLE\tPERCENT\t%s\n", strings.ToUpper(g.By), strings.ToUpper(g.Groups[0].Totals.Field))
	} else {
		fmt.Fprintf(tw, "%s\tCOUNT\tDONE\tAPPLICABLE\tPERCENT\n", strings.ToUpper(g.By))
	}
	for _, e := range g.Groups {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d%%", e.Label, e.Count,
			e.Summary.Completed, e.Summary.Applicable, e.Summary.Percentage)
		if withTotals && e.Totals != nil {
			fmt.Fprintf(tw, "\t%s", e.Totals.Sum.StringFixed(2))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func formatCompletion(s aggregate.CompletionSummary) string {
	line := fmt.Sprintf("%d/%d (%d%%)", s.Completed, s.Applicable, s.Percentage)
	if s.NA > 0 {
		line += fmt.Sprintf(", %d N/A", s.NA)
	}
	return line
}

func formatTotals(t aggregate.Totals) string {
	return fmt.Sprintf("%s sum %s, average %s, min %s, max %s over %d",
		t.Field, t.Sum.StringFixed(2), t.Average.StringFixed(2),
		t.Min.StringFixed(2), t.Max.StringFixed(2), t.Count)
}
