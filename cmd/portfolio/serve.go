package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/marcosnunesmbs/portfolio/internal/config"
	"github.com/marcosnunesmbs/portfolio/internal/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio page over HTTP",
		Long: `Serve renders the portfolio page and serves it over HTTP.

Routes:
  GET /               the rendered page
  GET /assets/*       files from the assets directory
  GET /api/portfolio  the lists as JSON
  GET /healthz        liveness and render status

With --watch, the page is rendered again whenever the data file or the
template changes. A change that fails to render keeps the previous page.

Examples:
  # Serve the built-in page on :8080
  portfolio serve

  # Serve your own lists and reload them on save
  portfolio serve --data me.yaml --watch --addr localhost:3000`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	addSiteFlags(cmd)
	cmd.Flags().String("addr", config.DefaultServerAddr, "Listen address")
	cmd.Flags().String("assets", config.DefaultAssetsDir, "Directory served under /assets/")
	cmd.Flags().BoolP("watch", "w", false, "Re-render when the data file or template changes")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyStringFlags(cmd, map[string]*string{
		"data":     &cfg.DataFile,
		"template": &cfg.TemplateFile,
		"addr":     &cfg.ServerAddr,
		"assets":   &cfg.AssetsDir,
	}); err != nil {
		return err
	}
	if cfg.Watch, err = cmd.Flags().GetBool("watch"); err != nil {
		return err
	}

	if err := cfg.ValidateSite(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd)

	if _, err := os.Stat(cfg.AssetsDir); err != nil {
		logger.Warn("assets directory not available", "dir", cfg.AssetsDir, "error", err)
	}

	site, err := server.NewSite(cfg.DataFile, cfg.TemplateFile, server.WithLogger(logger))
	if err != nil {
		return err
	}
	handler := server.NewRouter(site, cfg.AssetsDir, logger)

	ctx, stop := signalContext(cmd)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	if cfg.Watch {
		g.Go(func() error {
			err := site.Watch(ctx)
			if errors.Is(err, server.ErrNothingToWatch) {
				logger.Warn("--watch has no effect with the built-in data and template")
				return nil
			}
			return err
		})
	}
	g.Go(func() error {
		return server.ListenAndServe(ctx, cfg.ServerAddr, handler, config.DefaultShutdownTimeout, logger)
	})

	fmt.Fprintf(cmd.OutOrStdout(), "Serving portfolio on %s\n", cfg.ServerAddr)
	return g.Wait()
}
