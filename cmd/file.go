package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/typed-time-tracker/internal/storage"
)

var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Replace the working copy with a JSON document",
	Long: `Replace the working copy with a JSON document exported by ttt or the
browser app. The document is validated first; an invalid file leaves the
working copy untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

var saveCmd = &cobra.Command{
	Use:   "save [file]",
	Short: "Write the working copy as a JSON document",
	Long: `Write the working copy as a JSON document. Without a path it is written to
the current directory under the name it was loaded with.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSave,
}

func runLoad(cmd *cobra.Command, args []string) error {
	path := args[0]
	doc, err := storage.Load(path)
	if err != nil {
		return storageError(err)
	}
	if err := store.SetFileName(filepath.Base(path)); err != nil {
		return storageError(err)
	}
	if err := persist(cmd.Context(), doc); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d entries and %d types from %s\n",
		len(doc.Entries), len(storage.VisibleTypes(doc)), path)
	return nil
}

func runSave(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument()
	if err != nil {
		return err
	}
	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		if path, err = store.FileName(); err != nil {
			return storageError(err)
		}
	}
	if err := storage.Save(path, doc); err != nil {
		return storageError(err)
	}
	if err := store.SetFileName(filepath.Base(path)); err != nil {
		return storageError(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %d entries to %s\n", len(doc.Entries), path)
	return nil
}
