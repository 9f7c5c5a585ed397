package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nlitools/almagraph/internal/pipeline"
	"github.com/nlitools/almagraph/internal/server"
)

var (
	serveBind    string
	serveLogJSON bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API for the web front ends",
	Long: `Serve loads the dataset once and exposes it over HTTP:
  GET  /api/status        dataset snapshot and warnings
  GET  /api/lookup/{id}   resolve a single identifier
  GET  /api/catalog/{id}  catalog record with rights badge
  POST /api/classify      classify an uploaded identifier list

Requests are rate limited per client IP; identical classify uploads are
served from the response cache.

Example:
  almagraph serve
  almagraph serve --bind 0.0.0.0:8470 --log-json`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveBind, "bind", "", "listen address (overrides config)")
	serveCmd.Flags().BoolVar(&serveLogJSON, "log-json", false, "emit logs as JSON")

	// Source overrides shared with lookup
	serveCmd.Flags().StringVar(&graphPath, "graph", "", "child/parent table path (overrides config)")
	serveCmd.Flags().StringVar(&genizahPath, "genizah", "", "Genizah list path (overrides config)")
	serveCmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog index path (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applySourceOverrides(cfg)
	if serveBind != "" {
		cfg.Server.Bind = serveBind
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	var handler slog.Handler
	if serveLogJSON {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	logger := slog.New(handler)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, pipeline.NewPipeline(cfg), logger)
	return srv.Run(ctx)
}
