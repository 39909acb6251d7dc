package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/typed-time-tracker/internal/analytics"
	"github.com/Tiliavir/typed-time-tracker/internal/model"
	"github.com/Tiliavir/typed-time-tracker/internal/render"
	"github.com/Tiliavir/typed-time-tracker/internal/timecalc"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's total, the filtered summary and sync state",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	doc, f, err := loadSnapshot(false)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	today := timecalc.Today()

	todayEngine := analytics.New(doc, model.Filter{DateStart: today.String(), DateEnd: today.String()})
	switch {
	case todayEngine.OffDays().Contains(today):
		fmt.Fprintln(out, "Today is an off day.")
	default:
		fmt.Fprintf(out, "Today: %s logged.\n", timecalc.FormatDuration(todayEngine.TotalTime()))
	}
	fmt.Fprintf(out, "This month: %s logged.\n", timecalc.FormatDuration(monthMinutes(doc.Entries, today)))
	fmt.Fprintln(out)

	if line := render.FilterLine(f, doc.Types); line != "" {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, render.Summary(analytics.New(doc, f).Summary()))
	fmt.Fprintln(out)

	name, err := store.FileName()
	if err != nil {
		return storageError(err)
	}
	fmt.Fprintf(out, "File: %s\n", name)
	if at, ok, err := store.SavedAt(); err == nil && ok {
		fmt.Fprintf(out, "Last change: %s\n", at.Local().Format("2 Jan 2006 15:04"))
	}

	auth, err := newAuth()
	if err != nil {
		return err
	}
	switch {
	case !auth.SignedIn():
		fmt.Fprintln(out, "OneDrive: not signed in")
	case cfg.OneDrive.AutoSync:
		fmt.Fprintln(out, "OneDrive: signed in, auto sync on")
	default:
		fmt.Fprintln(out, "OneDrive: signed in, auto sync off")
	}
	return nil
}

// monthMinutes sums every timed entry in today's month, ignoring the filter.
func monthMinutes(entries []model.Entry, today timecalc.Day) int {
	return analytics.MonthlyTotals(entries)[timecalc.MonthKeyOf(today)]
}
