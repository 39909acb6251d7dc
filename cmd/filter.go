package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/typed-time-tracker/internal/model"
	"github.com/Tiliavir/typed-time-tracker/internal/render"
	"github.com/Tiliavir/typed-time-tracker/internal/storage"
	"github.com/Tiliavir/typed-time-tracker/internal/timecalc"
)

var (
	filterType  string
	filterFrom  string
	filterTo    string
	filterClear bool
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Show or change the filter applied to list, report and graph",
	Long: `Show or change the filter. Each flag replaces one field; an empty value
clears it. Dates are inclusive.`,
	Args: cobra.NoArgs,
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().StringVarP(&filterType, "type", "t", "", "Only this type (name or id)")
	filterCmd.Flags().StringVar(&filterFrom, "from", "", "First date (YYYY-MM-DD)")
	filterCmd.Flags().StringVar(&filterTo, "to", "", "Last date (YYYY-MM-DD)")
	filterCmd.Flags().BoolVar(&filterClear, "clear", false, "Remove the filter")
}

func runFilter(cmd *cobra.Command, args []string) error {
	doc, f, err := loadSnapshot(false)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	changed := filterClear || flags.Changed("type") || flags.Changed("from") || flags.Changed("to")

	if filterClear {
		f = model.Filter{}
	}
	if flags.Changed("type") {
		f.TypeID = ""
		if filterType != "" {
			t, err := storage.ResolveType(doc, filterType)
			if err != nil {
				return err
			}
			f.TypeID = t.ID
		}
	}
	if flags.Changed("from") {
		if err := checkDate("--from", filterFrom); err != nil {
			return err
		}
		f.DateStart = filterFrom
	}
	if flags.Changed("to") {
		if err := checkDate("--to", filterTo); err != nil {
			return err
		}
		f.DateEnd = filterTo
	}

	if changed {
		if err := store.SaveFilter(f); err != nil {
			return storageError(err)
		}
	}

	out := cmd.OutOrStdout()
	if line := render.FilterLine(f, doc.Types); line != "" {
		fmt.Fprintln(out, line)
	} else {
		fmt.Fprintln(out, "No filter.")
	}
	return nil
}

// checkDate accepts "" or a YYYY-MM-DD date.
func checkDate(flag, v string) error {
	if v == "" {
		return nil
	}
	if _, err := timecalc.ParseDay(v); err != nil {
		return fmt.Errorf("invalid %s value %q: %w", flag, v, err)
	}
	return nil
}
