package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/typed-time-tracker/internal/model"
	"github.com/Tiliavir/typed-time-tracker/internal/render"
	"github.com/Tiliavir/typed-time-tracker/internal/storage"
)

// typeColors are offered when a type is created interactively.
var typeColors = []string{
	storage.DefaultTypeColor,
	"#22c55e",
	"#f59e0b",
	"#ef4444",
	"#8b5cf6",
	"#ec4899",
	"#14b8a6",
	"#64748b",
}

var (
	typeColor string
	typeName  string
	typeRmYes bool
)

var typeCmd = &cobra.Command{
	Use:   "type",
	Short: "Manage entry types",
}

var typeAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a type",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTypeAdd,
}

var typeEditCmd = &cobra.Command{
	Use:   "edit <type>",
	Short: "Rename or recolour a type",
	Args:  cobra.ExactArgs(1),
	RunE:  runTypeEdit,
}

var typeRmCmd = &cobra.Command{
	Use:   "rm <type>",
	Short: "Delete a type; its entries are kept and shown as Unknown",
	Args:  cobra.ExactArgs(1),
	RunE:  runTypeRm,
}

var typeLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List types",
	Args:  cobra.NoArgs,
	RunE:  runTypeLs,
}

func init() {
	typeAddCmd.Flags().StringVarP(&typeColor, "color", "c", "", "Colour as #rrggbb")
	typeEditCmd.Flags().StringVar(&typeName, "name", "", "New name")
	typeEditCmd.Flags().StringVarP(&typeColor, "color", "c", "", "New colour as #rrggbb")
	typeRmCmd.Flags().BoolVarP(&typeRmYes, "yes", "y", false, "Do not ask for confirmation")

	typeCmd.AddCommand(typeAddCmd, typeEditCmd, typeRmCmd, typeLsCmd)
}

func runTypeAdd(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument()
	if err != nil {
		return err
	}

	name, color := "", typeColor
	if len(args) == 1 {
		name = args[0]
	} else {
		if color == "" {
			color = typeColors[0]
		}
		if err := typeForm(&name, &color); err != nil {
			return err
		}
	}
	if _, err := storage.ResolveType(doc, name); err == nil {
		return fmt.Errorf("type %q already exists", name)
	}

	t, err := storage.AddType(&doc, name, color)
	if err != nil {
		return err
	}
	if err := persist(cmd.Context(), doc); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created type %s %s\n", render.TypeDot(t.Color), t.Name)
	return nil
}

func typeForm(name, color *string) error {
	options := make([]huh.Option[string], len(typeColors))
	for i, c := range typeColors {
		options[i] = huh.NewOption(fmt.Sprintf("%s %s", render.TypeDot(c), c), c)
	}
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Type name").Value(name).Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("name is required")
				}
				return nil
			}),
			huh.NewSelect[string]().Title("Colour").Options(options...).Value(color),
		),
	).Run()
	if err != nil {
		return fmt.Errorf("pass the type name as an argument: %w", err)
	}
	return nil
}

func runTypeEdit(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument()
	if err != nil {
		return err
	}
	t, err := storage.ResolveType(doc, args[0])
	if err != nil {
		return err
	}
	var patch storage.TypePatch
	if cmd.Flags().Changed("name") {
		patch.Name = &typeName
	}
	if cmd.Flags().Changed("color") {
		patch.Color = &typeColor
	}
	updated, err := storage.UpdateType(&doc, t.ID, patch)
	if err != nil {
		return err
	}
	if err := persist(cmd.Context(), doc); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated type %s %s\n", render.TypeDot(updated.Color), updated.Name)
	return nil
}

func runTypeRm(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument()
	if err != nil {
		return err
	}
	t, err := storage.ResolveType(doc, args[0])
	if err != nil {
		return err
	}

	if n := storage.TypeInUse(doc, t.ID); n > 0 && !typeRmYes && !t.IsSystem {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("%d entries use %q. Delete the type anyway?", n, t.Name)).
			Description("The entries are kept and shown as Unknown.").
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

	if err := storage.DeleteType(&doc, t.ID); err != nil {
		return err
	}
	if err := persist(cmd.Context(), doc); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted type %s\n", t.Name)
	return nil
}

func runTypeLs(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument()
	if err != nil {
		return err
	}
	printTypes(cmd, doc)
	return nil
}

func printTypes(cmd *cobra.Command, doc model.Document) {
	types := storage.VisibleTypes(doc)
	if len(types) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No types defined.")
		return
	}
	for _, t := range types {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %-20s %-8s %4d entries  %s\n",
			render.TypeDot(t.Color), t.Name, t.Color, storage.TypeInUse(doc, t.ID), t.ID)
	}
}
