package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/typed-time-tracker/internal/analytics"
	"github.com/Tiliavir/typed-time-tracker/internal/model"
	"github.com/Tiliavir/typed-time-tracker/internal/timecalc"
)

var (
	reportView   string
	reportFormat string
	reportAll    bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show aggregated totals per period and per type",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportView, "view", "v", string(analytics.Weekly), "Period: day, week, month")
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "md", "Output format: md, csv, json, yaml")
	reportCmd.Flags().BoolVarP(&reportAll, "all", "a", false, "Ignore the current filter")
}

// report is the serialised shape of `ttt report`.
type report struct {
	View    string                `json:"view" yaml:"view"`
	Filter  model.Filter          `json:"filter" yaml:"filter"`
	Summary analytics.Summary     `json:"summary" yaml:"summary"`
	Types   []analytics.TypeShare `json:"types" yaml:"types"`
	Series  []analytics.Record    `json:"series" yaml:"series"`
}

func runReport(cmd *cobra.Command, args []string) error {
	g, err := analytics.ParseGranularity(reportView)
	if err != nil {
		return err
	}
	doc, f, err := loadSnapshot(reportAll)
	if err != nil {
		return err
	}
	e := analytics.New(doc, f)
	r := report{
		View:    string(g),
		Filter:  f,
		Summary: e.Summary(),
		Types:   e.Shares(),
		Series:  e.TimeGraphData(g),
	}
	if r.Types == nil {
		r.Types = []analytics.TypeShare{}
	}
	return writeReport(cmd.OutOrStdout(), reportFormat, r, doc.Types)
}

func writeReport(w io.Writer, format string, r report, types []model.Type) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case "csv":
		writeReportCSV(w, r, types)
		return nil
	case "md":
		writeReportMarkdown(w, r, types)
		return nil
	}
	return fmt.Errorf("unknown format %q: want md, csv, json or yaml", format)
}

// writeReportCSV prints one row per period with a minutes column per type.
func writeReportCSV(w io.Writer, r report, types []model.Type) {
	cols := seriesColumns(r.Series, types)
	header := []string{r.View}
	for _, c := range cols {
		header = append(header, csvEscape(c.name))
	}
	header = append(header, "total_minutes")
	fmt.Fprintln(w, strings.Join(header, ","))

	for _, rec := range r.Series {
		row := []string{csvEscape(rec.Key)}
		for _, c := range cols {
			row = append(row, fmt.Sprintf("%d", rec.ByType[c.id]))
		}
		row = append(row, fmt.Sprintf("%d", rec.Total))
		fmt.Fprintln(w, strings.Join(row, ","))
	}
}

func writeReportMarkdown(w io.Writer, r report, types []model.Type) {
	cols := seriesColumns(r.Series, types)

	fmt.Fprintf(w, "# Report by %s\n\n", r.View)
	if !r.Filter.IsZero() {
		fmt.Fprintf(w, "Filter: type=%q from=%q to=%q\n\n", r.Filter.TypeID, r.Filter.DateStart, r.Filter.DateEnd)
	}

	fmt.Fprintf(w, "| %s |", strings.ToUpper(r.View[:1])+r.View[1:])
	for _, c := range cols {
		fmt.Fprintf(w, " %s |", c.name)
	}
	fmt.Fprintln(w, " Total |")
	fmt.Fprint(w, "|---|")
	for range cols {
		fmt.Fprint(w, "---:|")
	}
	fmt.Fprintln(w, "---:|")
	for _, rec := range r.Series {
		fmt.Fprintf(w, "| %s |", rec.Key)
		for _, c := range cols {
			fmt.Fprintf(w, " %s |", timecalc.FormatDuration(rec.ByType[c.id]))
		}
		fmt.Fprintf(w, " %s |\n", timecalc.FormatDuration(rec.Total))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Type | Time | Share |")
	fmt.Fprintln(w, "|---|---:|---:|")
	for _, s := range r.Types {
		fmt.Fprintf(w, "| %s | %s | %.1f%% |\n", s.Name, timecalc.FormatDuration(s.Minutes), s.Percent)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "- Total: %s\n", timecalc.FormatDuration(r.Summary.TotalMinutes))
	fmt.Fprintf(w, "- Daily average: %s\n", timecalc.FormatDuration(r.Summary.DailyAverage))
	fmt.Fprintf(w, "- Weekly average: %s\n", timecalc.FormatDuration(r.Summary.WeeklyAverage))
	fmt.Fprintf(w, "- Entries: %d\n", r.Summary.EntryCount)
}

type column struct {
	id   string
	name string
}

// seriesColumns lists the user types in document order followed by any ids
// in the series that no longer resolve, labelled Unknown.
func seriesColumns(series []analytics.Record, types []model.Type) []column {
	var cols []column
	seen := map[string]bool{}
	for _, t := range types {
		if t.IsSystem {
			continue
		}
		cols = append(cols, column{id: t.ID, name: t.Name})
		seen[t.ID] = true
	}
	var unknown []string
	for _, rec := range series {
		for id := range rec.ByType {
			if !seen[id] {
				seen[id] = true
				unknown = append(unknown, id)
			}
		}
	}
	sort.Strings(unknown)
	for _, id := range unknown {
		cols = append(cols, column{id: id, name: analytics.UnknownTypeName + " (" + id + ")"})
	}
	return cols
}
