package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/typed-time-tracker/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analytics as a JSON API",
	Long: `Serve read-only JSON endpoints for a browser renderer:

  GET /api/graph?view=day|week|month
  GET /api/types/time
  GET /api/summary
  GET /api/entries?sort=<column>&dir=asc|desc
  GET /api/types
  GET /metrics

typeId, dateStart and dateEnd query parameters override the stored filter.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s (Ctrl+C to stop)\n", addr)
	return server.New(store, log).ListenAndServe(ctx, addr)
}
