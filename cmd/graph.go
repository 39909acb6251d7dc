package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/typed-time-tracker/internal/analytics"
	"github.com/Tiliavir/typed-time-tracker/internal/render"
	"github.com/Tiliavir/typed-time-tracker/internal/timecalc"
)

var (
	graphView      string
	graphLast      int
	graphThisMonth bool
	graphWidth     int
	graphHeight    int
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Draw time per period as stacked bars, plus the share per type",
	Long: `Draw the filtered entries as one stacked bar per day, week or month, gaps
included and off days left out. --last shows a fixed number of trailing days
or weeks ending today; --this-month shows every day of the current month.`,
	Args: cobra.NoArgs,
	RunE: runGraph,
}

func init() {
	graphCmd.Flags().StringVarP(&graphView, "view", "v", string(analytics.Daily), "Period: day, week, month")
	graphCmd.Flags().IntVarP(&graphLast, "last", "n", 0, "Only the last N days or weeks, ending today")
	graphCmd.Flags().BoolVar(&graphThisMonth, "this-month", false, "Every day of the current month")
	graphCmd.Flags().IntVar(&graphWidth, "width", 80, "Chart width in cells")
	graphCmd.Flags().IntVar(&graphHeight, "height", 14, "Chart height in cells")
}

func runGraph(cmd *cobra.Command, args []string) error {
	g, err := analytics.ParseGranularity(graphView)
	if err != nil {
		return err
	}
	doc, f, err := loadSnapshot(false)
	if err != nil {
		return err
	}
	e := analytics.New(doc, f)

	today := timecalc.Today()
	var records []analytics.Record
	switch {
	case graphThisMonth:
		records = e.CurrentMonthDays(today)
	case graphLast > 0 && g == analytics.Daily:
		records = e.LastNDays(graphLast, today)
	case graphLast > 0 && g == analytics.Weekly:
		records = e.LastNWeeks(graphLast, today)
	case graphLast > 0:
		return fmt.Errorf("--last works with the day and week views")
	default:
		if records, err = e.TimeGraph(graphView); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if line := render.FilterLine(f, doc.Types); line != "" {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, render.Title("Time per "+string(g)))
	fmt.Fprintln(out, render.TimeGraph(records, e.Types(), graphWidth, graphHeight))
	fmt.Fprintln(out)
	fmt.Fprintln(out, render.Title("Time per type"))
	fmt.Fprintln(out, render.Shares(e.Shares(), 30))
	return nil
}
