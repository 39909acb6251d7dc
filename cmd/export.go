package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/typed-time-tracker/internal/analytics"
	"github.com/Tiliavir/typed-time-tracker/internal/model"
	"github.com/Tiliavir/typed-time-tracker/internal/render"
)

var (
	exportFormat string
	exportAll    bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered entries to stdout",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "Output format: csv, json, yaml, md")
	exportCmd.Flags().BoolVarP(&exportAll, "all", "a", false, "Ignore the current filter")
}

func runExport(cmd *cobra.Command, args []string) error {
	doc, f, err := loadSnapshot(exportAll)
	if err != nil {
		return err
	}
	entries := analytics.New(doc, f).Entries()
	out := cmd.OutOrStdout()

	switch exportFormat {
	case "json":
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case "yaml":
		data, err := yaml.Marshal(entries)
		if err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		fmt.Fprint(out, string(data))
	case "md":
		fmt.Fprintln(out, render.EntryTable(entries, doc.Types))
	case "csv":
		printCSV(out, entries, doc.Types)
	default:
		return fmt.Errorf("unknown format %q: want csv, json, yaml or md", exportFormat)
	}
	return nil
}

func printCSV(w io.Writer, entries []model.Entry, types []model.Type) {
	fmt.Fprintln(w, "date,end_date,type,title,start,end,duration_minutes,off_day")
	for _, e := range entries {
		typeName, _ := render.TypeOf(e, types)
		fmt.Fprintf(w, "%s,%s,%s,%s,%s,%s,%d,%t\n",
			csvEscape(e.Date),
			csvEscape(e.EndDate),
			csvEscape(typeName),
			csvEscape(e.Title),
			csvEscape(e.StartTime),
			csvEscape(e.EndTime),
			e.DurationMinutes,
			e.IsOffDay,
		)
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	needsQuote := false
	for _, c := range s {
		if c == ',' || c == '"' || c == '\n' || c == '\r' {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return s
	}
	// Escape internal double quotes by doubling them.
	escaped := ""
	for _, c := range s {
		if c == '"' {
			escaped += "\""
		}
		escaped += string(c)
	}
	return `"` + escaped + `"`
}
