package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/typed-time-tracker/internal/analytics"
	"github.com/Tiliavir/typed-time-tracker/internal/model"
	"github.com/Tiliavir/typed-time-tracker/internal/render"
)

var (
	listSort string
	listDesc bool
	listAll  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries matching the current filter",
	Long: `List entries matching the current filter, newest first. --sort orders by
title, type, date, start, end or duration; ties keep their listed order.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listSort, "sort", "s", "", "Sort column: title, type, date, start, end, duration")
	listCmd.Flags().BoolVar(&listDesc, "desc", false, "Sort descending")
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "Ignore the current filter")
}

func runList(cmd *cobra.Command, args []string) error {
	doc, f, err := loadSnapshot(listAll)
	if err != nil {
		return err
	}
	e := analytics.New(doc, f)

	entries := e.Entries()
	if listSort != "" {
		dir := analytics.Ascending
		if listDesc {
			dir = analytics.Descending
		}
		entries = e.Sorted(analytics.Column(listSort), dir)
	}

	out := cmd.OutOrStdout()
	if line := render.FilterLine(f, doc.Types); line != "" {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, render.EntryTable(entries, e.Types()))
	return nil
}

// loadSnapshot reads the working copy and the stored filter. With ignore
// set the filter is empty.
func loadSnapshot(ignoreFilter bool) (model.Document, model.Filter, error) {
	doc, err := loadDocument()
	if err != nil {
		return model.Document{}, model.Filter{}, err
	}
	if ignoreFilter {
		return doc, model.Filter{}, nil
	}
	f, err := store.Filter()
	if err != nil {
		return model.Document{}, model.Filter{}, storageError(err)
	}
	return doc, f, nil
}
