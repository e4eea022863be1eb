package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/marcosnunesmbs/portfolio/internal/config"
	plog "github.com/marcosnunesmbs/portfolio/internal/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for portfolio.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Portfolio page renderer and trace comparator",
		Long: `portfolio renders the personal portfolio page and compares browser
performance traces.

The page is built from three lists (skills, certifications, projects) that are
appended to the containers of an HTML template. The lists and the template are
embedded; both can be replaced with files.

The trace comparator reads two performance-trace JSON files, prints the
before/after metrics and writes them to analysis-data.json.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .portfolio.yaml in current or home directory)")

	// Add subcommands
	cmd.AddCommand(NewRenderCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the structured logger for cmd and installs it as the
// slog default. Records go to the command's error stream.
func setupLogger(cmd *cobra.Command) *slog.Logger {
	logger := plog.NewLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
	slog.SetDefault(logger)
	return logger
}

// loadConfig returns the defaults overlaid with the configuration file.
// An explicitly requested file must exist; otherwise a missing file is ignored.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("configuration file not found: %s", configPath)
			}
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(file)
	case explicitConfigPath:
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	return cfg, nil
}

// applyStringFlags copies every string flag in flags that was set on the
// command line into its destination.
func applyStringFlags(cmd *cobra.Command, flags map[string]*string) error {
	for name, dst := range flags {
		if !cmd.Flags().Changed(name) {
			continue
		}
		v, err := cmd.Flags().GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}
	return nil
}

// signalContext returns the command context, cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}
