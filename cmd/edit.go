package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/typed-time-tracker/internal/render"
	"github.com/Tiliavir/typed-time-tracker/internal/storage"
	"github.com/Tiliavir/typed-time-tracker/internal/timecalc"
)

var (
	editTitle string
	editType  string
	editDate  string
	editUntil string
	editStart string
	editEnd   string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change an entry",
	Long: `Change the fields given as flags. The id may be shortened to any unique
prefix. The duration is recalculated.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var rmYes bool

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

func init() {
	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringVarP(&editType, "type", "t", "", "New type name or id")
	editCmd.Flags().StringVarP(&editDate, "date", "d", "", "New date (YYYY-MM-DD)")
	editCmd.Flags().StringVar(&editUntil, "until", "", "New last day of an off-day range")
	editCmd.Flags().StringVar(&editStart, "start", "", "New start time (HH:MM)")
	editCmd.Flags().StringVar(&editEnd, "end", "", "New end time (HH:MM)")

	rmCmd.Flags().BoolVarP(&rmYes, "yes", "y", false, "Do not ask for confirmation")
}

func runEdit(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument()
	if err != nil {
		return err
	}
	e, err := storage.ResolveEntry(doc, args[0])
	if err != nil {
		return err
	}

	var patch storage.EntryPatch
	flags := cmd.Flags()
	if flags.Changed("title") {
		patch.Title = &editTitle
	}
	if flags.Changed("type") {
		t, err := storage.ResolveType(doc, editType)
		if err != nil {
			return err
		}
		patch.TypeID = &t.ID
	}
	if flags.Changed("date") {
		patch.Date = &editDate
	}
	if flags.Changed("until") {
		patch.EndDate = &editUntil
	}
	if flags.Changed("start") {
		patch.StartTime = &editStart
	}
	if flags.Changed("end") {
		patch.EndTime = &editEnd
	}

	updated, err := storage.UpdateEntry(&doc, e.ID, patch)
	if err != nil {
		return err
	}
	if err := persist(cmd.Context(), doc); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %q on %s (%s)\n",
		updated.Title, render.EntryDate(updated), timecalc.FormatDuration(updated.DurationMinutes))
	return nil
}

func runRm(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument()
	if err != nil {
		return err
	}
	e, err := storage.ResolveEntry(doc, args[0])
	if err != nil {
		return err
	}

	if !rmYes {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %q on %s?", e.Title, render.EntryDate(e))).
			Affirmative("Delete").
			Negative("Keep").
			Value(&confirmed).
			Run()
		if err != nil {
			return fmt.Errorf("confirm with --yes: %w", err)
		}
		if !confirmed {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing deleted.")
			return nil
		}
	}

	if err := storage.DeleteEntry(&doc, e.ID); err != nil {
		return err
	}
	if err := persist(cmd.Context(), doc); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", e.Title)
	return nil
}
