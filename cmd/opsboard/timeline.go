package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hyperengineering/opsboard/internal/calendar"
	"github.com/hyperengineering/opsboard/internal/dashboard"
	"github.com/hyperengineering/opsboard/internal/types"
	"github.com/spf13/cobra"
)

var (
	timelineFrom string
	timelineTo   string
	timelineNow  string
	timelineSpan string
)

var timelineCmd = &cobra.Command{
	Use:   "timeline <dataset-id>",
	Short: "Print a dataset's weekly timeline grid",
	Long: `Print the dataset's tasks against Sunday-aligned week columns.

Without --from and --to the window covers every stored event, or twelve
weeks from today when there are none. The current week is marked with *.`,
	Args: cobra.ExactArgs(1),
	RunE: runTimeline,
}

func init() {
	timelineCmd.Flags().StringVar(&timelineFrom, "from", "",
		"First day of the window (YYYY-MM-DD)")
	timelineCmd.Flags().StringVar(&timelineTo, "to", "",
		"Last day of the window (YYYY-MM-DD)")
	timelineCmd.Flags().StringVar(&timelineNow, "now", "",
		"Reference date for past/current/future weeks (YYYY-MM-DD or RFC3339)")
	timelineCmd.Flags().StringVar(&timelineSpan, "span", string(calendar.DefaultSpanPolicy),
		"How events crossing the window edge are drawn: collapse or clip")
}

func runTimeline(cmd *cobra.Command, args []string) error {
	opts, err := timelineOptions()
	if err != nil {
		return err
	}

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

	resp, err := dashboard.New(db, 0, nil).Timeline(ctx, ds, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, resp)
	}
	return printTimeline(out, resp)
}

func timelineOptions() (dashboard.TimelineOptions, error) {
	opts := dashboard.TimelineOptions{From: timelineFrom, To: timelineTo}

	for _, d := range []struct{ flag, value string }{{"from", timelineFrom}, {"to", timelineTo}} {
		if d.value == "" {
			continue
		}
		if _, ok := calendar.ParseDate(d.value, time.UTC); !ok {
			return opts, fmt.Errorf("--%s %q must be a date in YYYY-MM-DD format", d.flag, d.value)
		}
	}
	if timelineFrom != "" && timelineTo != "" && timelineTo < timelineFrom {
		return opts, fmt.Errorf("--to %s is before --from %s", timelineTo, timelineFrom)
	}

	switch calendar.SpanPolicy(timelineSpan) {
	case calendar.SpanCollapse, calendar.SpanClip:
		opts.Span = calendar.SpanPolicy(timelineSpan)
	default:
		return opts, fmt.Errorf("--span %q must be collapse or clip", timelineSpan)
	}

	if timelineNow != "" {
		now, ok := calendar.ParseDate(timelineNow, time.UTC)
		if !ok {
			t, err := time.Parse(time.RFC3339, timelineNow)
			if err != nil {
				return opts, fmt.Errorf("--now %q must be YYYY-MM-DD or RFC3339", timelineNow)
			}
			now = t
		}
		opts.Now = now
	}
	return opts, nil
}

// printTimeline draws one line per task. An event block shows its label in
// its first column and "=" in each further column it spans; "." marks a week
// covered by an event drawn elsewhere.
func printTimeline(out io.Writer, resp types.TimelineResponse) error {
	g := resp.Grid
	if len(g.Weeks) == 0 {
		fmt.Fprintln(out, "No weeks in range.")
		return nil
	}

	tw := newTabWriter(out)
	months := make([]string, 0, len(g.Weeks))
	for _, m := range g.Months {
		months = append(months, m.Label)
		for i := 1; i < m.Span; i++ {
			months = append(months, "")
		}
	}
	fmt.Fprintf(tw, "\t%s\n", strings.Join(months, "\t"))

	headers := make([]string, 0, len(g.Weeks))
	for _, w := range g.Weeks {
		h := w.Date[5:]
		if w.Class == calendar.WeekCurrent {
			h += "*"
		}
		headers = append(headers, h)
	}
	fmt.Fprintf(tw, "TASK\t%s\n", strings.Join(headers, "\t"))

	for _, row := range g.Rows {
		cols := make([]string, 0, len(g.Weeks))
		for _, c := range row.Cells {
			switch {
			case c.Event != nil:
				label := c.Event.Label
				if label == "" {
					label = "#"
				}
				cols = append(cols, label)
				for i := 1; i < c.Span; i++ {
					cols = append(cols, "=")
				}
			case c.Covered:
				cols = append(cols, ".")
			default:
				cols = append(cols, "")
			}
		}
		fmt.Fprintf(tw, "%s\t%s\n", row.Task.Task, strings.Join(cols, "\t"))
	}
	return tw.Flush()
}
