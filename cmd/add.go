package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/typed-time-tracker/internal/model"
	"github.com/Tiliavir/typed-time-tracker/internal/render"
	"github.com/Tiliavir/typed-time-tracker/internal/storage"
	"github.com/Tiliavir/typed-time-tracker/internal/timecalc"
)

var (
	addType  string
	addDate  string
	addStart string
	addEnd   string
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a time entry",
	Long: `Add a time entry. The duration is derived from --start and --end; an end
at or before the start is taken to be on the next day. Without --type the
type is chosen interactively.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

var offUntil string

var offCmd = &cobra.Command{
	Use:   "off <date> [title]",
	Short: "Mark a day or an inclusive range of days as off",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runOff,
}

func init() {
	addCmd.Flags().StringVarP(&addType, "type", "t", "", "Type name or id")
	addCmd.Flags().StringVarP(&addDate, "date", "d", "", "Date (YYYY-MM-DD); defaults to today")
	addCmd.Flags().StringVar(&addStart, "start", storage.DefaultStartTime, "Start time (HH:MM)")
	addCmd.Flags().StringVar(&addEnd, "end", storage.DefaultEndTime, "End time (HH:MM)")

	offCmd.Flags().StringVar(&offUntil, "until", "", "Last off day of the range (YYYY-MM-DD)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument()
	if err != nil {
		return err
	}

	ref := addType
	if ref == "" {
		ref, err = pickType(doc)
		if err != nil {
			return err
		}
	}
	t, err := storage.ResolveType(doc, ref)
	if err != nil {
		return err
	}

	entry := model.Entry{
		TypeID:    model.StrPtr(t.ID),
		Date:      addDate,
		StartTime: addStart,
		EndTime:   addEnd,
	}
	if len(args) == 1 {
		entry.Title = args[0]
	}
	added, err := storage.AddEntry(&doc, entry)
	if err != nil {
		return err
	}
	if err := persist(cmd.Context(), doc); err != nil {
		return err
	}
	log.Debugw("entry added", "id", added.ID, "type", t.ID)

	fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%s) on %s: %s–%s, %s\n",
		added.Title, t.Name, timecalc.FormatLongDate(added.Date),
		added.StartTime, added.EndTime, timecalc.FormatDuration(added.DurationMinutes))
	return nil
}

// pickType asks for a type when none was given on the command line.
func pickType(doc model.Document) (string, error) {
	types := storage.VisibleTypes(doc)
	if len(types) == 0 {
		return "", fmt.Errorf("no types defined yet (run: ttt type add <name>)")
	}
	options := make([]huh.Option[string], 0, len(types))
	for _, t := range types {
		options = append(options, huh.NewOption(t.Name, t.ID))
	}
	var id string
	err := huh.NewSelect[string]().
		Title("Type").
		Options(options...).
		Value(&id).
		Run()
	if err != nil {
		return "", fmt.Errorf("choose a type with --type: %w", err)
	}
	return id, nil
}

func runOff(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument()
	if err != nil {
		return err
	}
	title := ""
	if len(args) == 2 {
		title = args[1]
	}
	added, err := storage.AddOffDay(&doc, title, args[0], offUntil)
	if err != nil {
		return err
	}
	if err := persist(cmd.Context(), doc); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as off (%s)\n", render.EntryDate(added), added.Title)
	return nil
}
