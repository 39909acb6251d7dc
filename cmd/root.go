package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/typed-time-tracker/internal/cache"
	"github.com/Tiliavir/typed-time-tracker/internal/config"
	"github.com/Tiliavir/typed-time-tracker/internal/logger"
	"github.com/Tiliavir/typed-time-tracker/internal/model"
	"github.com/Tiliavir/typed-time-tracker/internal/onedrive"
)

var (
	logLevel  string
	logFormat string

	cfg   config.Config
	log   = logger.Nop()
	store *cache.Cache
)

var rootCmd = &cobra.Command{
	Use:   "ttt",
	Short: "Typed Time Tracker – log time by type and see where it went",
	Long: `ttt records time entries tagged with user-defined types, marks off days
and reports daily, weekly and monthly totals. The working copy is kept in
~/.ttt/cache.db and can be loaded from, saved to, or synced with a JSON
document shared with the browser app.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: console or json (overrides config)")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(offCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(typeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(onedriveCmd)
	rootCmd.AddCommand(serveCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return storageError(err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	log, err = logger.New(cfg.Log)
	if err != nil {
		return err
	}
	log.Debugw("config loaded", "cache", cfg.Cache.Path, "auto_sync", cfg.OneDrive.AutoSync)

	store, err = cache.New(cfg.Cache.Path)
	if err != nil {
		return storageError(err)
	}
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if store != nil {
		if err := store.Close(); err != nil {
			log.WithError(err).Warn("closing cache")
		}
	}
	_ = log.Close()
	return nil
}

// exitError carries the process exit code: 2 for storage failures, 1 for
// everything else.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func storageError(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: 2, err: err}
}

func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

// loadDocument reads the working copy.
func loadDocument() (model.Document, error) {
	doc, err := store.Document()
	return doc, storageError(err)
}

// persist writes the working copy and, with auto sync enabled and a stored
// token, pushes it to OneDrive. Sync failures are logged, not returned.
func persist(ctx context.Context, doc model.Document) error {
	if err := store.SaveDocument(doc); err != nil {
		return storageError(err)
	}
	log.Debugw("working copy saved", "entries", len(doc.Entries), "types", len(doc.Types))
	if !cfg.OneDrive.AutoSync {
		return nil
	}
	client, err := driveClient(ctx)
	if errors.Is(err, onedrive.ErrNotSignedIn) {
		log.Debug("auto sync skipped: not signed in")
		return nil
	}
	if err != nil {
		log.WithError(err).Warn("auto sync failed")
		return nil
	}
	if err := client.Upload(ctx, doc); err != nil {
		log.WithError(err).Warn("auto sync failed")
		return nil
	}
	log.Infow("pushed to OneDrive", "file", cfg.OneDrive.FileName)
	return nil
}
